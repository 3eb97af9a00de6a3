package services

import (
	"context"
	"log"

	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

type GenerationServiceInterface interface {
	GenerateOfferingDescription(offeringID string, request request_models.GenerateDescriptionRequest, ctx context.Context) (response_models.GeneratedDescription, error)
}

type GenerationService struct {
	generator          utils.TextGeneratorInterface
	provider           string
	offeringRepository repositories.OfferingRepository
	businessRepository repositories.BusinessRepository
}

func NewGenerationService(
	generator utils.TextGeneratorInterface,
	provider string,
	offeringRepository repositories.OfferingRepository,
	businessRepository repositories.BusinessRepository,
) GenerationServiceInterface {
	return &GenerationService{
		generator:          generator,
		provider:           provider,
		offeringRepository: offeringRepository,
		businessRepository: businessRepository,
	}
}

// GenerateOfferingDescription returns a draft only; nothing is written until
// an admin saves it through the normal offering update.
func (g *GenerationService) GenerateOfferingDescription(offeringID string, request request_models.GenerateDescriptionRequest, ctx context.Context) (response_models.GeneratedDescription, error) {
	offering, err := g.offeringRepository.GetByID(ctx, offeringID)
	if err != nil {
		log.Printf("Error fetching offering %s: %v", offeringID, err)
		return response_models.GeneratedDescription{}, utils.ErrDatabaseError
	}
	if offering == nil {
		return response_models.GeneratedDescription{}, utils.ErrOfferingNotFound
	}

	input := utils.DescriptionInput{
		Name:     offering.Name,
		Category: offering.Business.Name,
		Notes:    request.Notes,
	}
	if business, err := g.businessRepository.GetByID(ctx, offering.BusinessID.String()); err == nil && business != nil {
		for _, tag := range business.Tags {
			input.Tags = append(input.Tags, tag.Name)
		}
	}

	draft, err := g.generator.GenerateDescription(ctx, input)
	if err != nil {
		log.Printf("Error generating description for %s: %v", offeringID, err)
		return response_models.GeneratedDescription{}, utils.ErrUpstreamFailed
	}

	return response_models.GeneratedDescription{
		OfferingID: offering.ID.String(),
		Draft:      draft,
		Provider:   g.provider,
	}, nil
}
