package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bizlens/pkg/utils"
)

// RefreshScheduler fires the refresh once a day at a configured local time.
// The check granularity is one minute, like a cron entry.
type RefreshScheduler struct {
	mu        sync.Mutex
	refresh   RefreshServiceInterface
	hour      int
	minute    int
	nextRun   time.Time
	cancel    context.CancelFunc
	isRunning bool
}

func NewRefreshScheduler(refresh RefreshServiceInterface, hour, minute int) *RefreshScheduler {
	return &RefreshScheduler{
		refresh: refresh,
		hour:    hour,
		minute:  minute,
	}
}

func (s *RefreshScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.isRunning = true
	s.nextRun = calculateNextRun(time.Now(), s.hour, s.minute)

	go s.run(ctx)
	log.Printf("Refresh scheduler started, next run at %s", s.nextRun.Format(time.RFC3339))
}

func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cancel()
	s.isRunning = false
	log.Println("Refresh scheduler stopped")
}

func (s *RefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *RefreshScheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

func (s *RefreshScheduler) run(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.check(ctx, now)
		}
	}
}

func (s *RefreshScheduler) check(ctx context.Context, now time.Time) {
	s.mu.Lock()
	due := now.After(s.nextRun) || now.Equal(s.nextRun)
	s.mu.Unlock()

	if !due {
		return
	}

	summary, err := s.refresh.RunRefresh(ctx)
	if err != nil {
		if errors.Is(err, utils.ErrRefreshRunning) {
			log.Println("Scheduled refresh skipped: a run is already in progress")
		} else {
			log.Printf("Scheduled refresh failed: %v", err)
		}
	} else {
		log.Printf("Scheduled refresh done: %s", summary.Message)
	}

	s.mu.Lock()
	s.nextRun = calculateNextRun(now, s.hour, s.minute)
	s.mu.Unlock()
}

// calculateNextRun returns the next strictly future occurrence of HH:MM.
// Strictly, so that a tick landing exactly on the slot cannot reschedule
// the same instant and fire twice.
func calculateNextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(
		now.Year(), now.Month(), now.Day(),
		hour, minute, 0, 0, now.Location(),
	)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
