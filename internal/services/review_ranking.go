package services

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"bizlens/internal/models/db_models"
)

const (
	fullReviewBase      = 100.0
	partialReviewBase   = 50.0
	levelBoostPerStep   = 20.0
	viewsWeight         = 0.5
	jitterFraction      = 0.10
	fullReviewMinImages = 3
)

// ScoredReview pairs a review with its computed priority score. Scores stay
// internal; responses only carry the resulting order.
type ScoredReview struct {
	Review db_models.UserReview
	Score  float64
}

// ReviewRanker orders approved reviews for display. Fuller reviews from
// higher-level reviewers float up; a small random jitter keeps equally
// scored reviews from always rendering in the same order.
type ReviewRanker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewReviewRanker() *ReviewRanker {
	return NewSeededReviewRanker(time.Now().UnixNano())
}

// NewSeededReviewRanker fixes the jitter sequence, used by tests.
func NewSeededReviewRanker(seed int64) *ReviewRanker {
	return &ReviewRanker{rng: rand.New(rand.NewSource(seed))}
}

// IsFullReview reports whether a review carries enough substance for the
// full-review base score: non-empty text and at least three images.
func IsFullReview(review db_models.UserReview) bool {
	if strings.TrimSpace(review.ReviewText) == "" {
		return false
	}
	return len(review.ImageURLs) >= fullReviewMinImages
}

// Score computes the priority score for one review. The reviewer level comes
// from the preloaded Account; a missing level counts as 1.
func (r *ReviewRanker) Score(review db_models.UserReview) float64 {
	score := partialReviewBase
	full := IsFullReview(review)
	if full {
		score = fullReviewBase
	}

	level := review.Account.Level
	if level < 1 {
		level = 1
	}
	if full {
		score += float64(level-1) * levelBoostPerStep
	}

	views := review.Views
	if views < 0 {
		views = 0
	}
	score += float64(views) * viewsWeight

	score += r.jitter(score)
	if score < 0 {
		return 0
	}
	return score
}

// RankReviews scores every review and returns them ordered best-first.
// Pure over its inputs apart from the jitter draw.
func (r *ReviewRanker) RankReviews(reviews []db_models.UserReview) []ScoredReview {
	scored := make([]ScoredReview, 0, len(reviews))
	for _, review := range reviews {
		scored = append(scored, ScoredReview{
			Review: review,
			Score:  r.Score(review),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// jitter draws once, uniform in ±jitterFraction of the running score.
func (r *ReviewRanker) jitter(score float64) float64 {
	r.mu.Lock()
	f := r.rng.Float64()
	r.mu.Unlock()
	return (f*2 - 1) * jitterFraction * score
}
