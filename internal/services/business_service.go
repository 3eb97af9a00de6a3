package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	defaultNearbyRadiusKm = 10.0
	defaultNearbyLimit    = 20
	maxNearbyLimit        = 100
)

type BusinessServiceInterface interface {
	CreateBusiness(req request_models.CreateBusinessRequest, ctx context.Context) (string, error)
	UpdateBusiness(req request_models.UpdateBusinessRequest, ctx context.Context) error
	SetVerified(req request_models.SetVerifiedRequest, ctx context.Context) error
	SetVisible(req request_models.SetVisibleRequest, ctx context.Context) error

	GetBusinessByID(id string, ctx context.Context) (response_models.BusinessDetail, error)
	GetBusinessBySlug(slug string, ctx context.Context) (response_models.BusinessDetail, error)
	ListBusinesses(filter repositories.BusinessFilter, page, pageSize int, ctx context.Context) ([]response_models.BusinessSummary, error)
	ListNearby(query request_models.NearbyQuery, ctx context.Context) ([]response_models.BusinessSummary, error)
}

type BusinessService struct {
	businessRepository repositories.BusinessRepository
	tagRepository      repositories.TagRepository
	embeddingService   EmbeddingServiceInterface
}

func NewBusinessService(
	businessRepository repositories.BusinessRepository,
	tagRepository repositories.TagRepository,
	embeddingService EmbeddingServiceInterface,
) BusinessServiceInterface {
	return &BusinessService{
		businessRepository: businessRepository,
		tagRepository:      tagRepository,
		embeddingService:   embeddingService,
	}
}

func (b *BusinessService) CreateBusiness(req request_models.CreateBusinessRequest, ctx context.Context) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", utils.ErrInvalidInput
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	existing, err := b.businessRepository.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("Error checking slug %s: %v", slug, err)
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		slug = slug + "-" + uuid.NewString()[:8]
	}

	tags, err := b.tagRepository.FindOrCreateByNames(ctx, req.Tags)
	if err != nil {
		log.Printf("Error resolving tags: %v", err)
		return "", utils.ErrDatabaseError
	}

	business := db_models.Business{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		CityID:      req.CityID,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Phone:       req.Phone,
		Website:     req.Website,
		IsVisible:   true,
		Tags:        tags,
	}

	id, err := b.businessRepository.Create(ctx, &business)
	if err != nil {
		log.Printf("Error creating business: %v", err)
		return "", utils.ErrDatabaseError
	}

	b.reembed(ctx, id.String())
	return id.String(), nil
}

func (b *BusinessService) UpdateBusiness(req request_models.UpdateBusinessRequest, ctx context.Context) error {
	existing, err := b.businessRepository.GetByID(ctx, req.ID.String())
	if err != nil {
		log.Printf("Error fetching business %s: %v", req.ID, err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrBusinessNotFound
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.CategoryID != nil {
		existing.CategoryID = req.CategoryID
	}
	if req.CityID != nil {
		existing.CityID = req.CityID
	}
	if req.Address != "" {
		existing.Address = req.Address
	}
	if req.Latitude != 0 || req.Longitude != 0 {
		existing.Latitude = req.Latitude
		existing.Longitude = req.Longitude
	}
	if req.Phone != "" {
		existing.Phone = req.Phone
	}
	if req.Website != "" {
		existing.Website = req.Website
	}

	// Associations saved separately so a tag change never clones rows.
	existing.Tags = nil
	if err := b.businessRepository.Update(ctx, existing); err != nil {
		log.Printf("Error updating business %s: %v", req.ID, err)
		return utils.ErrDatabaseError
	}

	if req.Tags != nil {
		tags, err := b.tagRepository.FindOrCreateByNames(ctx, req.Tags)
		if err != nil {
			log.Printf("Error resolving tags: %v", err)
			return utils.ErrDatabaseError
		}
		if err := b.tagRepository.ReplaceForBusiness(ctx, req.ID.String(), tags); err != nil {
			log.Printf("Error replacing tags for %s: %v", req.ID, err)
			return utils.ErrDatabaseError
		}
	}

	b.reembed(ctx, req.ID.String())
	return nil
}

func (b *BusinessService) SetVerified(req request_models.SetVerifiedRequest, ctx context.Context) error {
	if err := b.businessRepository.SetVerified(ctx, req.ID, req.Verified); err != nil {
		log.Printf("Error setting verified on %s: %v", req.ID, err)
		return translateNotFound(err, utils.ErrBusinessNotFound)
	}
	return nil
}

func (b *BusinessService) SetVisible(req request_models.SetVisibleRequest, ctx context.Context) error {
	if err := b.businessRepository.SetVisible(ctx, req.ID, req.Visible); err != nil {
		log.Printf("Error setting visible on %s: %v", req.ID, err)
		return translateNotFound(err, utils.ErrBusinessNotFound)
	}
	return nil
}

func (b *BusinessService) GetBusinessByID(id string, ctx context.Context) (response_models.BusinessDetail, error) {
	business, err := b.businessRepository.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching business %s: %v", id, err)
		return response_models.BusinessDetail{}, utils.ErrDatabaseError
	}
	if business == nil || !business.IsVisible {
		return response_models.BusinessDetail{}, utils.ErrBusinessNotFound
	}
	return toBusinessDetail(*business), nil
}

func (b *BusinessService) GetBusinessBySlug(slug string, ctx context.Context) (response_models.BusinessDetail, error) {
	business, err := b.businessRepository.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("Error fetching business by slug %s: %v", slug, err)
		return response_models.BusinessDetail{}, utils.ErrDatabaseError
	}
	if business == nil || !business.IsVisible {
		return response_models.BusinessDetail{}, utils.ErrBusinessNotFound
	}
	return toBusinessDetail(*business), nil
}

func (b *BusinessService) ListBusinesses(filter repositories.BusinessFilter, page, pageSize int, ctx context.Context) ([]response_models.BusinessSummary, error) {
	businesses, err := b.businessRepository.List(ctx, filter, page, pageSize)
	if err != nil {
		log.Printf("Error listing businesses: %v", err)
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.BusinessSummary, 0, len(businesses))
	for _, business := range businesses {
		summaries = append(summaries, toBusinessSummary(business))
	}
	return summaries, nil
}

func (b *BusinessService) ListNearby(query request_models.NearbyQuery, ctx context.Context) ([]response_models.BusinessSummary, error) {
	radius := query.RadiusKm
	if radius <= 0 {
		radius = defaultNearbyRadiusKm
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}
	if limit > maxNearbyLimit {
		limit = maxNearbyLimit
	}

	businesses, err := b.businessRepository.ListNearby(ctx, query.Latitude, query.Longitude, radius, limit)
	if err != nil {
		log.Printf("Error listing nearby businesses: %v", err)
		return nil, utils.ErrDatabaseError
	}

	summaries := make([]response_models.BusinessSummary, 0, len(businesses))
	for _, item := range businesses {
		summary := toBusinessSummary(item.Business)
		distance := item.DistanceKm
		summary.DistanceKm = &distance
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// reembed refreshes the business embedding after a write. Best effort: a
// failed embed is logged and healed by the nightly refresh.
func (b *BusinessService) reembed(ctx context.Context, id string) {
	business, err := b.businessRepository.GetByID(ctx, id)
	if err != nil || business == nil {
		log.Printf("Skipping embed for business %s: %v", id, err)
		return
	}
	if err := b.embeddingService.RefreshBusinessEmbedding(ctx, *business); err != nil {
		log.Printf("Deferred embed for business %s: %v", id, err)
	}
}
