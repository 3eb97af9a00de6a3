package services

import (
	"context"
	"time"

	"bizlens/internal/models/db_models"
	resp "bizlens/internal/models/response_models"
	"bizlens/internal/repositories"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange) resp.TimeRange {
	out := r
	if out.Interval == "" {
		out.Interval = "day"
	}
	if out.End.IsZero() {
		out.End = time.Now().UTC()
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange) (*resp.DashboardReport, error) {
	rng = normalizeRange(rng)

	// ---------- Core counts ----------
	totalBusinesses, err := s.repo.CountTotalBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	verifiedBusinesses, err := s.repo.CountVerifiedBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	totalOfferings, err := s.repo.CountTotalOfferings(ctx)
	if err != nil {
		return nil, err
	}
	totalAccounts, err := s.repo.CountTotalAccounts(ctx)
	if err != nil {
		return nil, err
	}
	newAccounts, err := s.repo.CountNewAccounts(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	approvedReviews, err := s.repo.CountReviewsByStatus(ctx, db_models.ReviewStatusApproved)
	if err != nil {
		return nil, err
	}
	pendingReviews, err := s.repo.CountReviewsByStatus(ctx, db_models.ReviewStatusPending)
	if err != nil {
		return nil, err
	}
	rejectedReviews, err := s.repo.CountReviewsByStatus(ctx, db_models.ReviewStatusRejected)
	if err != nil {
		return nil, err
	}

	totalFavorites, err := s.repo.CountTotalFavorites(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Series ----------
	reviewRows, err := s.repo.NewReviewsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var reviewPoints []resp.SeriesPoint
	for _, r := range reviewRows {
		reviewPoints = append(reviewPoints, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	accountRows, err := s.repo.NewAccountsSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	var accountPoints []resp.SeriesPoint
	for _, r := range accountRows {
		accountPoints = append(accountPoints, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
	}

	// ---------- Top businesses ----------
	topRows, err := s.repo.TopBusinessesByReviews(ctx, rng.Start, rng.End, 10)
	if err != nil {
		return nil, err
	}
	var topBusinesses []resp.TopBusiness
	for _, r := range topRows {
		topBusinesses = append(topBusinesses, resp.TopBusiness{
			BusinessID:  r.BusinessID,
			Name:        r.Name,
			ReviewCount: r.Count,
			RatingAvg:   r.RatingAvg,
		})
	}

	// ---------- Recent moderation activity ----------
	modRows, err := s.repo.RecentModerations(ctx, 10)
	if err != nil {
		return nil, err
	}
	var recent []resp.RecentModeration
	for _, r := range modRows {
		recent = append(recent, resp.RecentModeration{
			ReviewID:       r.ID,
			Status:         r.Status,
			Rating:         r.Rating,
			ModeratedAt:    r.ModeratedAt,
			BusinessName:   r.BusinessName,
			ModeratorEmail: r.ModeratorEmail,
		})
	}

	report := &resp.DashboardReport{
		Range: resp.TimeRange{
			Start:    rng.Start,
			End:      rng.End,
			Interval: rng.Interval,
			Timezone: rng.Timezone,
		},
		KPIs: resp.KPIBlock{
			TotalBusinesses:    totalBusinesses,
			VerifiedBusinesses: verifiedBusinesses,
			TotalOfferings:     totalOfferings,
			TotalAccounts:      totalAccounts,
			NewAccounts:        newAccounts,
			ApprovedReviews:    approvedReviews,
			PendingReviews:     pendingReviews,
			RejectedReviews:    rejectedReviews,
			TotalFavorites:     totalFavorites,
		},
		NewReviews: resp.CountSeries{
			Points: reviewPoints,
		},
		NewAccounts: resp.CountSeries{
			Points: accountPoints,
		},
		TopBusinesses:     topBusinesses,
		RecentModerations: recent,
	}

	return report, nil
}
