package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

const (
	refreshLookback    = 24 * time.Hour
	rateLimitRetention = 24 * time.Hour
)

type RefreshServiceInterface interface {
	RunRefresh(ctx context.Context) (response_models.RefreshSummary, error)
}

// RefreshService re-embeds recently changed rows and re-checks recently
// approved images. Units are processed sequentially with a fixed pause
// between embedding calls; a unit failure is recorded and the run goes on.
type RefreshService struct {
	mu sync.Mutex

	businessRepo  repositories.BusinessRepository
	offeringRepo  repositories.OfferingRepository
	imageRepo     repositories.OfferingImageRepository
	rateLimitRepo repositories.RateLimitRepository
	embedding     EmbeddingServiceInterface
	moderation    ModerationServiceInterface

	delay time.Duration
}

func NewRefreshService(
	businessRepo repositories.BusinessRepository,
	offeringRepo repositories.OfferingRepository,
	imageRepo repositories.OfferingImageRepository,
	rateLimitRepo repositories.RateLimitRepository,
	embedding EmbeddingServiceInterface,
	moderation ModerationServiceInterface,
	delay time.Duration,
) RefreshServiceInterface {
	return &RefreshService{
		businessRepo:  businessRepo,
		offeringRepo:  offeringRepo,
		imageRepo:     imageRepo,
		rateLimitRepo: rateLimitRepo,
		embedding:     embedding,
		moderation:    moderation,
		delay:         delay,
	}
}

// RunRefresh executes one full pass. A second call while a pass is running
// fails fast with ErrRefreshRunning; the guard is in-process only.
func (s *RefreshService) RunRefresh(ctx context.Context) (response_models.RefreshSummary, error) {
	if !s.mu.TryLock() {
		return response_models.RefreshSummary{}, utils.ErrRefreshRunning
	}
	defer s.mu.Unlock()

	started := time.Now()
	summary := response_models.RefreshSummary{
		StartedAt: started.UTC(),
		Errors:    []response_models.UnitError{},
	}
	since := started.Add(-refreshLookback).Unix()
	ok := true

	log.Printf("Refresh started, lookback since %d", since)

	// Businesses first; their names feed the offering embedding text.
	businesses, err := s.businessRepo.ListUpdatedSince(ctx, since)
	if err != nil {
		log.Printf("Error listing updated businesses: %v", err)
		summary.Errors = append(summary.Errors, response_models.UnitError{ID: "businesses", Error: err.Error()})
		ok = false
	}
	for _, business := range businesses {
		if ctx.Err() != nil {
			break
		}
		if err := s.embedding.RefreshBusinessEmbedding(ctx, business); err != nil {
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: business.ID.String(), Error: err.Error()})
		} else {
			summary.BusinessesRefreshed++
		}
		s.pause(ctx)
	}

	offerings, err := s.offeringRepo.ListUpdatedSince(ctx, since)
	if err != nil {
		log.Printf("Error listing updated offerings: %v", err)
		summary.Errors = append(summary.Errors, response_models.UnitError{ID: "offerings", Error: err.Error()})
		ok = false
	}
	for _, offering := range offerings {
		if ctx.Err() != nil {
			break
		}
		if err := s.embedding.RefreshOfferingEmbedding(ctx, offering); err != nil {
			summary.OfferingsFailed++
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: offering.ID.String(), Error: err.Error()})
		} else {
			summary.OfferingsRefreshed++
		}
		s.pause(ctx)
	}

	images, err := s.imageRepo.ListApprovedSince(ctx, since)
	if err != nil {
		log.Printf("Error listing images to re-check: %v", err)
		summary.Errors = append(summary.Errors, response_models.UnitError{ID: "images", Error: err.Error()})
		ok = false
	}
	for _, image := range images {
		if ctx.Err() != nil {
			break
		}
		summary.ImagesChecked++

		result, err := s.moderation.CheckImage(ctx, image.URL)
		if err != nil {
			// Transport-level failure: record it, leave the image alone.
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: image.ID.String(), Error: err.Error()})
			continue
		}
		if result.Passed {
			continue
		}

		log.Printf("Image %s failed check %s (confidence %.2f)", image.ID, result.Reason, result.Confidence)
		promoted, err := s.imageRepo.RejectAndPromoteNext(ctx, image.ID)
		if err != nil {
			summary.Errors = append(summary.Errors, response_models.UnitError{ID: image.ID.String(), Error: err.Error()})
			continue
		}
		summary.ImagesFlagged++
		if promoted != nil {
			log.Printf("Image %s promoted to primary for offering %s", promoted, image.OfferingID)
		}
	}

	pruned, err := s.rateLimitRepo.DeleteOlderThan(ctx, started.Add(-rateLimitRetention).Unix())
	if err != nil {
		log.Printf("Error pruning rate limit rows: %v", err)
		summary.Errors = append(summary.Errors, response_models.UnitError{ID: "rate_limits", Error: err.Error()})
	} else {
		summary.RateLimitRowsPruned = pruned
	}

	summary.Success = ok
	summary.DurationMillis = time.Since(started).Milliseconds()
	summary.Message = fmt.Sprintf(
		"refreshed %d businesses and %d offerings, checked %d images (%d flagged), %d errors",
		summary.BusinessesRefreshed, summary.OfferingsRefreshed,
		summary.ImagesChecked, summary.ImagesFlagged, len(summary.Errors),
	)
	log.Printf("Refresh finished in %dms: %s", summary.DurationMillis, summary.Message)

	return summary, nil
}

func (s *RefreshService) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(s.delay):
	}
}
