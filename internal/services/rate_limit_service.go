package services

import (
	"context"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"bizlens/internal/repositories"
)

// denialCacheTTL keeps a client that just hit its limit out of the database
// for a few seconds; the window recheck happens when the entry expires.
const denialCacheTTL = 5 * time.Second

type RateLimitRule struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitRules covers every throttled endpoint. Functions not listed
// here are not limited.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"semantic-search":      {Limit: 30, Window: time.Minute},
		"submit-review":        {Limit: 10, Window: time.Minute},
		"newsletter-subscribe": {Limit: 5, Window: time.Minute},
		"refresh-trigger":      {Limit: 2, Window: time.Minute},
	}
}

type RateLimitServiceInterface interface {
	// Allow reports whether identifier may call function right now. Storage
	// errors never block a request; the limiter fails open.
	Allow(identifier string, function string, ctx context.Context) bool
}

type RateLimitService struct {
	rateLimitRepository repositories.RateLimitRepository
	rules               map[string]RateLimitRule
	denials             *cache.Cache
}

func NewRateLimitService(rateLimitRepository repositories.RateLimitRepository, rules map[string]RateLimitRule) RateLimitServiceInterface {
	if rules == nil {
		rules = DefaultRateLimitRules()
	}
	return &RateLimitService{
		rateLimitRepository: rateLimitRepository,
		rules:               rules,
		denials:             cache.New(denialCacheTTL, denialCacheTTL*2),
	}
}

func (r *RateLimitService) Allow(identifier string, function string, ctx context.Context) bool {
	rule, throttled := r.rules[function]
	if !throttled || identifier == "" {
		return true
	}

	key := function + ":" + identifier
	if _, denied := r.denials.Get(key); denied {
		return false
	}

	since := time.Now().Add(-rule.Window).Unix()
	count, err := r.rateLimitRepository.CountSince(ctx, identifier, function, since)
	if err != nil {
		log.Printf("Error counting rate limit rows for %s: %v", key, err)
		return true
	}
	if count >= int64(rule.Limit) {
		r.denials.Set(key, struct{}{}, cache.DefaultExpiration)
		return false
	}

	if err := r.rateLimitRepository.Record(ctx, identifier, function); err != nil {
		log.Printf("Error recording rate limit row for %s: %v", key, err)
	}
	return true
}
