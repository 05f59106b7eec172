// SPDX-License-Identifier: GPL-3.0-only

package registry

import "time"

const day = 24 * time.Hour

// Named subscription plans and the access window each one grants. Any other
// label is treated as a custom plan with an explicit day/hour offset.
var subscriptionPeriods = map[string]time.Duration{
	"1 Week":   7 * day,
	"1 Month":  30 * day,
	"3 Months": 90 * day,
	"6 Months": 180 * day,
	"1 Year":   365 * day,
}

// RemainingTime is the countdown the client displays next to a valid key.
type RemainingTime struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// remainingTime decomposes the wall-clock distance to the expiration date.
// Minutes folds a full-range minute count back modulo 60 while hours is
// derived independently from the sub-day seconds; clients depend on this
// exact decomposition, so do not cascade the fields.
func remainingTime(expiration, now time.Time) RemainingTime {
	diff := expiration.Sub(now)
	days := int(diff / day)
	seconds := int((diff % day) / time.Second)
	totalMinutes := days*24*60 + seconds/60
	return RemainingTime{
		Days:    days,
		Hours:   seconds / 3600,
		Minutes: totalMinutes % 60,
	}
}
