// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

var AllModels []any

// License is a key record granting timed access to the client application,
// optionally bound to a single device. DeviceID stays NULL until the first
// successful check-in binds it; ExpirationDate is set once at creation and
// never recomputed. Records are hard-deleted, so there is no DeletedAt.
type License struct {
	ID               uint      `gorm:"primaryKey"`
	Key              string    `gorm:"size:50;not null;uniqueIndex"`
	Active           bool      `gorm:"not null;default:true"`
	ExpirationDate   time.Time `gorm:"not null"`
	SubscriptionType string    `gorm:"size:20;not null"`
	SupportName      string    `gorm:"size:50"`
	DeviceID         *string   `gorm:"size:50;default:null"`
	Activated        bool      `gorm:"not null;default:false"`
	KeyType          string    `gorm:"size:20;not null"`
	MultiDevice      bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func init() {
	AllModels = append(AllModels, &License{})
}
