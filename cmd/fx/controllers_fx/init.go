package controllers_fx

import (
	"go.uber.org/fx"

	"bizlens/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewBusinessController),
	fx.Provide(controllers.NewOfferingController),
	fx.Provide(controllers.NewReviewController),
	fx.Provide(controllers.NewFavoriteController),
	fx.Provide(controllers.NewSearchController),
	fx.Provide(controllers.NewTaxonomyController),
	fx.Provide(controllers.NewContentController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController))
