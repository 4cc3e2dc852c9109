package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/BrandonMiller18/nhlcompanion-be/internal/platform/logging"
)

type countingScheduleProvider struct {
	fakeLiveProvider
	dates []string
}

func (p *countingScheduleProvider) FetchScheduleForDate(ctx context.Context, date string) ([]ExternalScheduleGame, error) {
	p.dates = append(p.dates, date)
	return p.fakeLiveProvider.FetchScheduleForDate(ctx, date)
}

func TestSyncDateRangeWalksEveryDay(t *testing.T) {
	t.Parallel()

	provider := &countingScheduleProvider{
		fakeLiveProvider: fakeLiveProvider{
			schedule: []ExternalScheduleGame{{ID: 2024020001, State: "FUT"}},
		},
	}
	store := newFakeStore()
	svc := NewScheduleSyncService(provider, store, logging.NewNop())

	total, err := svc.SyncDateRange(context.Background(), "2025-01-01", "2025-01-03")
	if err != nil {
		t.Fatalf("SyncDateRange() error = %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want one game per day over 3 days", total)
	}
	want := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	if len(provider.dates) != len(want) {
		t.Fatalf("dates = %v, want %v", provider.dates, want)
	}
	for i, d := range want {
		if provider.dates[i] != d {
			t.Fatalf("dates[%d] = %q, want %q", i, provider.dates[i], d)
		}
	}
}

func TestSyncDateRangeRejectsReversedRange(t *testing.T) {
	t.Parallel()

	svc := NewScheduleSyncService(&fakeLiveProvider{}, newFakeStore(), logging.NewNop())
	if _, err := svc.SyncDateRange(context.Background(), "2025-01-03", "2025-01-01"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSyncDateRangeRejectsBadDate(t *testing.T) {
	t.Parallel()

	svc := NewScheduleSyncService(&fakeLiveProvider{}, newFakeStore(), logging.NewNop())
	if _, err := svc.SyncDateRange(context.Background(), "01/02/2025", "2025-01-03"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
