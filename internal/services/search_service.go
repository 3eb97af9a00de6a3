package services

import (
	"context"
	"log"
	"strings"

	"bizlens/internal/models/request_models"
	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	defaultSearchLimit     = 10
	maxSearchLimit         = 50
	defaultSearchThreshold = 0.35
)

type SearchServiceInterface interface {
	SemanticSearch(req request_models.SemanticSearchRequest, ctx context.Context) (response_models.SearchResponse, error)
}

type SearchService struct {
	embedder      utils.EmbeddingClientInterface
	embeddingRepo repositories.EmbeddingRepository
	businessRepo  repositories.BusinessRepository
	offeringRepo  repositories.OfferingRepository
}

func NewSearchService(
	embedder utils.EmbeddingClientInterface,
	embeddingRepo repositories.EmbeddingRepository,
	businessRepo repositories.BusinessRepository,
	offeringRepo repositories.OfferingRepository,
) SearchServiceInterface {
	return &SearchService{
		embedder:      embedder,
		embeddingRepo: embeddingRepo,
		businessRepo:  businessRepo,
		offeringRepo:  offeringRepo,
	}
}

func (s *SearchService) SemanticSearch(req request_models.SemanticSearchRequest, ctx context.Context) (response_models.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return response_models.SearchResponse{}, utils.ErrInvalidInput
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	threshold := req.Threshold
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultSearchThreshold
	}

	scope := strings.ToLower(strings.TrimSpace(req.Scope))
	if scope == "" {
		scope = "all"
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		log.Printf("Error embedding search query: %v", err)
		return response_models.SearchResponse{}, utils.ErrEmbeddingFailed
	}

	result := response_models.SearchResponse{Query: query}

	if scope == "businesses" || scope == "all" {
		matches, err := s.embeddingRepo.SearchBusinesses(ctx, vector, threshold, limit)
		if err != nil {
			log.Printf("Error searching business embeddings: %v", err)
			return response_models.SearchResponse{}, utils.ErrDatabaseError
		}
		for _, match := range matches {
			business, err := s.businessRepo.GetByID(ctx, match.BusinessID)
			if err != nil {
				log.Printf("Error hydrating business %s: %v", match.BusinessID, err)
				continue
			}
			if business == nil || !business.IsVisible {
				continue
			}
			summary := toBusinessSummary(*business)
			similarity := match.Similarity
			summary.Similarity = &similarity
			result.Businesses = append(result.Businesses, summary)
		}
	}

	if scope == "offerings" || scope == "all" {
		matches, err := s.embeddingRepo.SearchOfferings(ctx, vector, threshold, limit)
		if err != nil {
			log.Printf("Error searching offering embeddings: %v", err)
			return response_models.SearchResponse{}, utils.ErrDatabaseError
		}
		for _, match := range matches {
			offering, err := s.offeringRepo.GetByID(ctx, match.OfferingID)
			if err != nil {
				log.Printf("Error hydrating offering %s: %v", match.OfferingID, err)
				continue
			}
			if offering == nil || !offering.IsActive {
				continue
			}
			resp := toOfferingResponse(*offering)
			similarity := match.Similarity
			resp.Similarity = &similarity
			result.Offerings = append(result.Offerings, resp)
		}
	}

	return result, nil
}
