package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bizlens/internal/models/response_models"
)

type stubRefreshService struct {
	runs int
	err  error
}

func (s *stubRefreshService) RunRefresh(context.Context) (response_models.RefreshSummary, error) {
	s.runs++
	return response_models.RefreshSummary{Success: true, Message: "ok"}, s.err
}

func TestCalculateNextRun(t *testing.T) {
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		hour   int
		minute int
		want   time.Time
	}{
		{
			name: "slot still ahead today",
			now:  base,
			hour: 15, minute: 30,
			want: time.Date(2026, 8, 23, 15, 30, 0, 0, time.UTC),
		},
		{
			name: "slot already passed rolls to tomorrow",
			now:  base,
			hour: 3, minute: 0,
			want: time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the slot schedules the next day",
			now:  time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC),
			hour: 3, minute: 0,
			want: time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			now:  time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC),
			hour: 3, minute: 0,
			want: time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateNextRun(tt.now, tt.hour, tt.minute)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestSchedulerStartStop(t *testing.T) {
	scheduler := NewRefreshScheduler(&stubRefreshService{}, 3, 0)
	assert.False(t, scheduler.IsRunning())

	scheduler.Start()
	defer scheduler.Stop()
	assert.True(t, scheduler.IsRunning())
	assert.False(t, scheduler.NextRun().IsZero())

	// Start is idempotent while running.
	scheduler.Start()
	assert.True(t, scheduler.IsRunning())

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	// So is Stop once stopped.
	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())
}

func TestSchedulerCheckRunsWhenDue(t *testing.T) {
	stub := &stubRefreshService{}
	scheduler := NewRefreshScheduler(stub, 3, 0)
	scheduler.nextRun = time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC)

	// A tick before the slot does nothing.
	scheduler.check(context.Background(), time.Date(2026, 8, 23, 2, 59, 0, 0, time.UTC))
	assert.Equal(t, 0, stub.runs)

	// A tick on the slot fires and reschedules for tomorrow.
	now := time.Date(2026, 8, 23, 3, 0, 0, 0, time.UTC)
	scheduler.check(context.Background(), now)
	assert.Equal(t, 1, stub.runs)
	assert.True(t, scheduler.NextRun().Equal(time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)))

	// The next tick is before the new slot; nothing fires.
	scheduler.check(context.Background(), now.Add(time.Minute))
	assert.Equal(t, 1, stub.runs)
}