package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

// ErrGoogleKeyMissing spells out the setup steps because the discover endpoint
// is the only consumer of the key and operators hit this from the admin UI.
var ErrGoogleKeyMissing = errors.New(
	"GOOGLE_API_KEY is not configured. To enable Google My Business discovery: " +
		"1) open console.cloud.google.com and select the project that owns your Business Profile, " +
		"2) enable the My Business Account Management API and the My Business Business Information API, " +
		"3) create an API key under APIs & Services > Credentials, " +
		"4) set GOOGLE_API_KEY in the service environment and restart")

type GMBServiceInterface interface {
	DiscoverLocations(request request_models.ImportLocationsRequest, ctx context.Context) (response_models.ImportSummary, error)
}

type GMBService struct {
	client             utils.GMBClientInterface
	businessRepository repositories.BusinessRepository
	categoryRepository repositories.CategoryRepository
	cityRepository     repositories.CityRepository
}

// NewGMBService accepts a nil client when no API key is configured; discovery
// then reports the remediation steps instead of calling out.
func NewGMBService(
	client utils.GMBClientInterface,
	businessRepository repositories.BusinessRepository,
	categoryRepository repositories.CategoryRepository,
	cityRepository repositories.CityRepository,
) GMBServiceInterface {
	return &GMBService{
		client:             client,
		businessRepository: businessRepository,
		categoryRepository: categoryRepository,
		cityRepository:     cityRepository,
	}
}

func (g *GMBService) DiscoverLocations(request request_models.ImportLocationsRequest, ctx context.Context) (response_models.ImportSummary, error) {
	if g.client == nil {
		return response_models.ImportSummary{}, ErrGoogleKeyMissing
	}

	summary := response_models.ImportSummary{Success: true}

	var accountResources []string
	if request.AccountResource != "" {
		accountResources = []string{request.AccountResource}
	} else {
		accounts, err := g.client.ListAccounts(ctx)
		if err != nil {
			log.Printf("Error listing GMB accounts: %v", err)
			summary.Success = false
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: "accounts", Error: err.Error()})
			return summary, nil
		}
		for _, account := range accounts {
			accountResources = append(accountResources, account.Resource)
		}
	}

	for _, accountResource := range accountResources {
		if ctx.Err() != nil {
			summary.Success = false
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: accountResource, Error: ctx.Err().Error()})
			break
		}
		summary.AccountsScanned++

		locations, err := g.client.ListLocations(ctx, accountResource)
		if err != nil {
			log.Printf("Error listing locations for %s: %v", accountResource, err)
			summary.Success = false
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: accountResource, Error: err.Error()})
			continue
		}
		summary.LocationsFound += len(locations)

		for _, location := range locations {
			created, err := g.importLocation(ctx, location)
			if err != nil {
				log.Printf("Error importing location %s: %v", location.Resource, err)
				summary.Errors = append(summary.Errors, response_models.UnitError{ID: location.Resource, Error: err.Error()})
				continue
			}
			if created {
				summary.BusinessesCreated++
			} else {
				summary.BusinessesUpdated++
			}
		}
	}

	return summary, nil
}

func (g *GMBService) importLocation(ctx context.Context, location utils.GMBLocation) (bool, error) {
	if location.Title == "" {
		return false, errors.New("location has no title")
	}

	business := &db_models.Business{
		Name:        location.Title,
		Description: location.Description,
		Address:     location.Address,
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		Phone:       location.Phone,
		Website:     location.Website,
		GMBResource: location.Resource,
		// Imported rows stay hidden until an admin verifies and publishes.
		IsVerified: false,
		IsVisible:  false,
	}
	if len(location.Raw) > 0 {
		business.GMBRaw = datatypes.JSON(location.Raw)
	}

	if location.CategoryName != "" {
		category, err := g.categoryRepository.FindOrCreateByName(ctx, location.CategoryName)
		if err != nil {
			return false, err
		}
		business.CategoryID = &category.ID
	}
	if location.Locality != "" {
		city, err := g.cityRepository.FindOrCreate(ctx, location.Locality, location.Region)
		if err != nil {
			return false, err
		}
		business.CityID = &city.ID
	}

	business.Slug = utils.Slugify(location.Title)
	existing, err := g.businessRepository.GetBySlug(ctx, business.Slug)
	if err != nil {
		return false, err
	}
	if existing != nil && existing.GMBResource != location.Resource {
		business.Slug = business.Slug + "-" + uuid.NewString()[:8]
	}

	return g.businessRepository.UpsertByGMBResource(ctx, business)
}
