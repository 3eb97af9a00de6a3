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

type OfferingServiceInterface interface {
	CreateOffering(req request_models.CreateOfferingRequest, ctx context.Context) (string, error)
	UpdateOffering(req request_models.UpdateOfferingRequest, ctx context.Context) error
	GetOfferingByID(id string, ctx context.Context) (response_models.OfferingResponse, error)
	ListByBusiness(businessID string, page, pageSize int, ctx context.Context) ([]response_models.OfferingResponse, error)

	AddImage(req request_models.AddOfferingImageRequest, ctx context.Context) (string, error)
	ApproveImage(imageID uuid.UUID, ctx context.Context) error
	SetPrimaryImage(req request_models.SetPrimaryImageRequest, ctx context.Context) error
	DeleteImage(imageID uuid.UUID, ctx context.Context) error
}

type OfferingService struct {
	offeringRepository repositories.OfferingRepository
	imageRepository    repositories.OfferingImageRepository
	businessRepository repositories.BusinessRepository
	moderationService  ModerationServiceInterface
	embeddingService   EmbeddingServiceInterface
}

func NewOfferingService(
	offeringRepository repositories.OfferingRepository,
	imageRepository repositories.OfferingImageRepository,
	businessRepository repositories.BusinessRepository,
	moderationService ModerationServiceInterface,
	embeddingService EmbeddingServiceInterface,
) OfferingServiceInterface {
	return &OfferingService{
		offeringRepository: offeringRepository,
		imageRepository:    imageRepository,
		businessRepository: businessRepository,
		moderationService:  moderationService,
		embeddingService:   embeddingService,
	}
}

func (o *OfferingService) CreateOffering(req request_models.CreateOfferingRequest, ctx context.Context) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", utils.ErrInvalidInput
	}

	business, err := o.businessRepository.GetByID(ctx, req.BusinessID.String())
	if err != nil {
		log.Printf("Error fetching business %s: %v", req.BusinessID, err)
		return "", utils.ErrDatabaseError
	}
	if business == nil {
		return "", utils.ErrBusinessNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	offering := db_models.Offering{
		BusinessID:  req.BusinessID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    currency,
		IsActive:    true,
	}
	id, err := o.offeringRepository.Create(ctx, &offering)
	if err != nil {
		log.Printf("Error creating offering: %v", err)
		return "", utils.ErrDatabaseError
	}

	o.reembed(ctx, id.String())
	return id.String(), nil
}

func (o *OfferingService) UpdateOffering(req request_models.UpdateOfferingRequest, ctx context.Context) error {
	existing, err := o.offeringRepository.GetByID(ctx, req.ID.String())
	if err != nil {
		log.Printf("Error fetching offering %s: %v", req.ID, err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrOfferingNotFound
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.PriceCents != nil {
		existing.PriceCents = req.PriceCents
	}
	if req.Currency != "" {
		existing.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	existing.Images = nil
	existing.Business = db_models.Business{}
	if err := o.offeringRepository.Update(ctx, existing); err != nil {
		log.Printf("Error updating offering %s: %v", req.ID, err)
		return utils.ErrDatabaseError
	}

	o.reembed(ctx, req.ID.String())
	return nil
}

func (o *OfferingService) GetOfferingByID(id string, ctx context.Context) (response_models.OfferingResponse, error) {
	offering, err := o.offeringRepository.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching offering %s: %v", id, err)
		return response_models.OfferingResponse{}, utils.ErrDatabaseError
	}
	if offering == nil {
		return response_models.OfferingResponse{}, utils.ErrOfferingNotFound
	}
	return toOfferingResponse(*offering), nil
}

func (o *OfferingService) ListByBusiness(businessID string, page, pageSize int, ctx context.Context) ([]response_models.OfferingResponse, error) {
	offerings, err := o.offeringRepository.ListByBusiness(ctx, businessID, page, pageSize)
	if err != nil {
		log.Printf("Error listing offerings for business %s: %v", businessID, err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.OfferingResponse, 0, len(offerings))
	for _, offering := range offerings {
		responses = append(responses, toOfferingResponse(offering))
	}
	return responses, nil
}

// AddImage runs the safety checks at ingest. A failed check rejects the add
// outright; the image lands unapproved and waits for moderation.
func (o *OfferingService) AddImage(req request_models.AddOfferingImageRequest, ctx context.Context) (string, error) {
	offering, err := o.offeringRepository.GetByID(ctx, req.OfferingID.String())
	if err != nil {
		log.Printf("Error fetching offering %s: %v", req.OfferingID, err)
		return "", utils.ErrDatabaseError
	}
	if offering == nil {
		return "", utils.ErrOfferingNotFound
	}

	result, err := o.moderationService.CheckImage(ctx, req.URL)
	if err != nil {
		log.Printf("Error checking image %s: %v", req.URL, err)
		return "", utils.ErrUpstreamFailed
	}
	if !result.Passed {
		log.Printf("Image rejected at ingest: %s (%s, confidence %.2f)", req.URL, result.Reason, result.Confidence)
		return "", utils.ErrImageRejected
	}

	image := db_models.OfferingImage{
		OfferingID: req.OfferingID,
		URL:        req.URL,
		Source:     req.Source,
		License:    req.License,
		Width:      req.Width,
		Height:     req.Height,
	}
	id, err := o.imageRepository.Add(ctx, &image)
	if err != nil {
		log.Printf("Error storing image: %v", err)
		return "", utils.ErrDatabaseError
	}
	return id.String(), nil
}

func (o *OfferingService) ApproveImage(imageID uuid.UUID, ctx context.Context) error {
	if err := o.imageRepository.SetApproved(ctx, imageID, true); err != nil {
		log.Printf("Error approving image %s: %v", imageID, err)
		return translateNotFound(err, utils.ErrImageNotFound)
	}
	return nil
}

func (o *OfferingService) SetPrimaryImage(req request_models.SetPrimaryImageRequest, ctx context.Context) error {
	image, err := o.imageRepository.GetByID(ctx, req.ImageID.String())
	if err != nil {
		log.Printf("Error fetching image %s: %v", req.ImageID, err)
		return utils.ErrDatabaseError
	}
	if image == nil {
		return utils.ErrImageNotFound
	}
	if !image.IsApproved {
		return utils.ErrInvalidInput
	}

	if err := o.imageRepository.SetPrimary(ctx, req.ImageID); err != nil {
		log.Printf("Error setting primary image %s: %v", req.ImageID, err)
		return translateNotFound(err, utils.ErrImageNotFound)
	}
	return nil
}

func (o *OfferingService) DeleteImage(imageID uuid.UUID, ctx context.Context) error {
	promoted, err := o.imageRepository.DeleteAndPromoteNext(ctx, imageID)
	if err != nil {
		log.Printf("Error deleting image %s: %v", imageID, err)
		return translateNotFound(err, utils.ErrImageNotFound)
	}
	if promoted != nil {
		log.Printf("Image %s promoted to primary after delete of %s", promoted, imageID)
	}
	return nil
}

func (o *OfferingService) reembed(ctx context.Context, id string) {
	offering, err := o.offeringRepository.GetByID(ctx, id)
	if err != nil || offering == nil {
		log.Printf("Skipping embed for offering %s: %v", id, err)
		return
	}
	if err := o.embeddingService.RefreshOfferingEmbedding(ctx, *offering); err != nil {
		log.Printf("Deferred embed for offering %s: %v", id, err)
	}
}
