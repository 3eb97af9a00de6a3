package jobs_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	"bizlens/internal/config"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		provideRefreshService,
		provideRefreshScheduler),
	fx.Invoke(startScheduler),
)

func provideRefreshService(
	cfg config.Config,
	businessRepo repositories.BusinessRepository,
	offeringRepo repositories.OfferingRepository,
	imageRepo repositories.OfferingImageRepository,
	rateLimitRepo repositories.RateLimitRepository,
	embedding services.EmbeddingServiceInterface,
	moderation services.ModerationServiceInterface,
) services.RefreshServiceInterface {
	delay := time.Duration(cfg.RefreshDelayMillis) * time.Millisecond
	return services.NewRefreshService(
		businessRepo,
		offeringRepo,
		imageRepo,
		rateLimitRepo,
		embedding,
		moderation,
		delay,
	)
}

func provideRefreshScheduler(cfg config.Config, refresh services.RefreshServiceInterface) *services.RefreshScheduler {
	return services.NewRefreshScheduler(refresh, cfg.RefreshHour, cfg.RefreshMinute)
}

func startScheduler(lc fx.Lifecycle, scheduler *services.RefreshScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}
