package taxonomy_fx

import (
	"go.uber.org/fx"

	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Provide(
	provideTaxonomyService)

func provideTaxonomyService(
	categoryRepo repositories.CategoryRepository,
	cityRepo repositories.CityRepository,
	tagRepo repositories.TagRepository,
) services.TaxonomyServiceInterface {
	return services.NewTaxonomyService(categoryRepo, cityRepo, tagRepo)
}
