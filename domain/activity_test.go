package domain

import (
	"testing"
	"time"
)

func TestRelativeAge(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := map[string]struct {
		ts   time.Time
		want string
	}{
		"just_now":    {ts: now.Add(-30 * time.Second), want: "Just now"},
		"minutes":     {ts: now.Add(-5 * time.Minute), want: "5m ago"},
		"hours":       {ts: now.Add(-3 * time.Hour), want: "3h ago"},
		"days":        {ts: now.Add(-2 * 24 * time.Hour), want: "2d ago"},
		"older_weeks": {ts: now.Add(-10 * 24 * time.Hour), want: "Feb 28, 2026"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := RelativeAge(now, tc.ts); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
