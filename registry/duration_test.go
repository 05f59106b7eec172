// SPDX-License-Identifier: GPL-3.0-only

package registry

import (
	"testing"
	"time"
)

func TestSubscriptionPeriods(t *testing.T) {
	cases := map[string]time.Duration{
		"1 Week":   7 * day,
		"1 Month":  30 * day,
		"3 Months": 90 * day,
		"6 Months": 180 * day,
		"1 Year":   365 * day,
	}
	for label, want := range cases {
		got, ok := subscriptionPeriods[label]
		if !ok {
			t.Errorf("Missing subscription period for %q", label)
			continue
		}
		if got != want {
			t.Errorf("Expected %v for %q, got %v", want, label, got)
		}
	}
}

func TestRemainingTimeDecomposition(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		diff    time.Duration
		days    int
		hours   int
		minutes int
	}{
		{"full days plus remainder", 2*day + 3*time.Hour + 29*time.Minute, 2, 3, 29},
		{"sub-day only", 90 * time.Minute, 0, 1, 30},
		{"under a minute", 45 * time.Second, 0, 0, 0},
		{"exact day boundary", 3 * day, 3, 0, 0},
		{"minute fold across day count", 5*day + 59*time.Minute, 5, 0, 59},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := remainingTime(now.Add(tc.diff), now)
			if got.Days != tc.days || got.Hours != tc.hours || got.Minutes != tc.minutes {
				t.Errorf("Expected {%d %d %d}, got {%d %d %d}",
					tc.days, tc.hours, tc.minutes, got.Days, got.Hours, got.Minutes)
			}
		})
	}
}
