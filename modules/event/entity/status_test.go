package entity

import (
	"testing"
	"time"
)

func TestCalculateStatusExample(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		now  time.Time
		want Status
	}{
		{time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), StatusUpcoming},
		{start, StatusOngoing},
		{time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC), StatusOngoing},
		{end, StatusCompleted},
		{time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC), StatusCompleted},
	}
	for _, tt := range tests {
		if got := CalculateStatus(tt.now, start, end); got != tt.want {
			t.Errorf("CalculateStatus(%s) = %s, want %s", tt.now.Format(time.RFC3339), got, tt.want)
		}
	}
}

func TestCalculateStatusMonotonic(t *testing.T) {
	rank := map[Status]int{StatusUpcoming: 0, StatusOngoing: 1, StatusCompleted: 2}
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	spans := []time.Duration{time.Minute, 2 * time.Hour, 0, -time.Hour}
	for _, span := range spans {
		end := start.Add(span)
		prev := -1
		for now := start.Add(-3 * time.Hour); now.Before(start.Add(4 * time.Hour)); now = now.Add(7 * time.Minute) {
			got := CalculateStatus(now, start, end)
			r, ok := rank[got]
			if !ok {
				t.Fatalf("unexpected status %q", got)
			}
			if r < prev {
				t.Fatalf("span %s: status regressed to %s at %s", span, got, now)
			}
			prev = r
		}
	}
}
