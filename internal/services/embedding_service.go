package services

import (
	"context"
	"log"
	"strings"

	"bizlens/internal/models/db_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

type EmbeddingServiceInterface interface {
	RefreshBusinessEmbedding(ctx context.Context, business db_models.Business) error
	RefreshOfferingEmbedding(ctx context.Context, offering db_models.Offering) error
}

type EmbeddingService struct {
	embedder      utils.EmbeddingClientInterface
	embeddingRepo repositories.EmbeddingRepository
}

func NewEmbeddingService(embedder utils.EmbeddingClientInterface, embeddingRepo repositories.EmbeddingRepository) EmbeddingServiceInterface {
	return &EmbeddingService{
		embedder:      embedder,
		embeddingRepo: embeddingRepo,
	}
}

// BuildEmbeddingText assembles the text that gets embedded. Same builder for
// businesses and offerings so query vectors land in a comparable space.
func BuildEmbeddingText(name, category string, tags []string, description string) string {
	parts := make([]string, 0, 4)
	if name = strings.TrimSpace(name); name != "" {
		parts = append(parts, name)
	}
	if category = strings.TrimSpace(category); category != "" {
		parts = append(parts, "Category: "+category)
	}
	if len(tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(tags, ", "))
	}
	if description = strings.TrimSpace(description); description != "" {
		parts = append(parts, description)
	}
	return strings.Join(parts, "\n")
}

func (s *EmbeddingService) RefreshBusinessEmbedding(ctx context.Context, business db_models.Business) error {
	category := ""
	if business.Category != nil {
		category = business.Category.Name
	}
	tags := make([]string, 0, len(business.Tags))
	for _, tag := range business.Tags {
		tags = append(tags, tag.Name)
	}

	content := BuildEmbeddingText(business.Name, category, tags, business.Description)
	if content == "" {
		return nil
	}

	vector, err := s.embedder.EmbedText(ctx, content)
	if err != nil {
		log.Printf("Error embedding business %s: %v", business.ID, err)
		return utils.ErrEmbeddingFailed
	}

	err = s.embeddingRepo.UpsertBusinessEmbedding(ctx, db_models.BusinessEmbedding{
		BusinessID: business.ID.String(),
		Content:    content,
		Model:      utils.EmbeddingModelName,
		Embedding:  vector,
	})
	if err != nil {
		log.Printf("Error storing business embedding %s: %v", business.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *EmbeddingService) RefreshOfferingEmbedding(ctx context.Context, offering db_models.Offering) error {
	content := BuildEmbeddingText(offering.Name, offering.Business.Name, nil, offering.Description)
	if content == "" {
		return nil
	}

	vector, err := s.embedder.EmbedText(ctx, content)
	if err != nil {
		log.Printf("Error embedding offering %s: %v", offering.ID, err)
		return utils.ErrEmbeddingFailed
	}

	err = s.embeddingRepo.UpsertOfferingEmbedding(ctx, db_models.OfferingEmbedding{
		OfferingID: offering.ID.String(),
		Content:    content,
		Model:      utils.EmbeddingModelName,
		Embedding:  vector,
	})
	if err != nil {
		log.Printf("Error storing offering embedding %s: %v", offering.ID, err)
		return utils.ErrDatabaseError
	}
	return nil
}
