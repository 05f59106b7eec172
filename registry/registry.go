// SPDX-License-Identifier: GPL-3.0-only

// Package registry owns the License entity and its activation rules. All
// operations run against an injected GORM connection so tests can point the
// registry at a throwaway database.
package registry

import (
	"errors"
	"fmt"
	"time"

	"license-server/models"

	"gorm.io/gorm"
)

// Check-in rejection reasons. The client matches on these strings verbatim.
const (
	ReasonKeyNotFound       = "Key not found."
	ReasonDeviceConflict    = "This key is already used on another device."
	ReasonInactiveOrExpired = "The key is either inactive or expired."
)

type Registry struct {
	conn *gorm.DB
}

func New(conn *gorm.DB) *Registry {
	return &Registry{conn: conn}
}

type AddParams struct {
	Key              string
	SubscriptionType string
	SupportName      string
	KeyType          string
	MultiDevice      bool
	// Days and Hours only apply to custom subscription types. Negative
	// values pass through untouched and yield an already-expired key.
	Days  int
	Hours int
}

// CheckResult is the outcome of a single key check-in.
type CheckResult struct {
	Valid          bool
	Reason         string
	License        *models.License
	Remaining      RemainingTime
	NewlyActivated bool
}

// Add creates a license whose expiration date is computed once from the
// subscription type, or from the raw day/hour offset for custom plans.
func (r *Registry) Add(params AddParams) (*models.License, error) {
	if params.Key == "" {
		return nil, &ValidationError{Field: "key"}
	}
	if params.SubscriptionType == "" {
		return nil, &ValidationError{Field: "subscription_type"}
	}
	if params.KeyType == "" {
		return nil, &ValidationError{Field: "key_type"}
	}

	now := time.Now()
	var expiration time.Time
	if period, ok := subscriptionPeriods[params.SubscriptionType]; ok {
		expiration = now.Add(period)
	} else {
		expiration = now.Add(time.Duration(params.Days)*day + time.Duration(params.Hours)*time.Hour)
	}

	count := r.conn.Where(&models.License{Key: params.Key}).First(&models.License{}).RowsAffected
	if count > 0 {
		return nil, ErrDuplicateKey
	}

	license := models.License{
		Key:              params.Key,
		Active:           true,
		ExpirationDate:   expiration,
		SubscriptionType: params.SubscriptionType,
		SupportName:      params.SupportName,
		KeyType:          params.KeyType,
		MultiDevice:      params.MultiDevice,
	}
	if err := r.conn.Create(&license).Error; err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}
	return &license, nil
}

// List returns every license record in store order.
func (r *Registry) List() ([]models.License, error) {
	var licenses []models.License
	if err := r.conn.Find(&licenses).Error; err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	return licenses, nil
}

// ToggleActive flips the administrator kill switch on a license.
func (r *Registry) ToggleActive(id uint) (*models.License, error) {
	var license models.License
	if err := r.conn.First(&license, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load license: %w", err)
	}
	license.Active = !license.Active
	if err := r.conn.Save(&license).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle license: %w", err)
	}
	return &license, nil
}

// Delete permanently removes a license record and returns it.
func (r *Registry) Delete(id uint) (*models.License, error) {
	var license models.License
	if err := r.conn.First(&license, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load license: %w", err)
	}
	if err := r.conn.Delete(&license).Error; err != nil {
		return nil, fmt.Errorf("failed to delete license: %w", err)
	}
	return &license, nil
}

// ResetKey unbinds a license from its device so it can be activated again.
func (r *Registry) ResetKey(key string) (*models.License, error) {
	var license models.License
	if err := r.conn.Where(&models.License{Key: key}).First(&license).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load license: %w", err)
	}
	updates := map[string]any{"device_id": nil, "activated": false}
	if err := r.conn.Model(&license).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to reset key: %w", err)
	}
	license.DeviceID = nil
	license.Activated = false
	return &license, nil
}

// CheckKeyDetails validates a key check-in from a device, in fixed order:
// lookup, device-conflict rejection, bind-on-first-use, then the
// active/expiration gate. The binding write is persisted before the gate
// runs, so an expired key still records its activation.
func (r *Registry) CheckKeyDetails(key, deviceID string) (*CheckResult, error) {
	var license models.License
	err := r.conn.Where(&models.License{Key: key}).First(&license).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CheckResult{Valid: false, Reason: ReasonKeyNotFound}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load license: %w", err)
	}

	if license.Activated && !license.MultiDevice &&
		(license.DeviceID == nil || *license.DeviceID != deviceID) {
		return &CheckResult{Valid: false, Reason: ReasonDeviceConflict, License: &license}, nil
	}

	newlyActivated := false
	if !license.Activated || license.MultiDevice {
		newlyActivated = !license.Activated
		updates := map[string]any{"activated": true}
		if !license.MultiDevice {
			updates["device_id"] = deviceID
			license.DeviceID = &deviceID
		}
		license.Activated = true
		// Single-statement write: the device binding and the activated
		// flag must never land separately.
		if err := r.conn.Model(&license).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to persist activation: %w", err)
		}
	}

	now := time.Now()
	if !license.Active || !license.ExpirationDate.After(now) {
		return &CheckResult{
			Valid:          false,
			Reason:         ReasonInactiveOrExpired,
			License:        &license,
			NewlyActivated: newlyActivated,
		}, nil
	}

	return &CheckResult{
		Valid:          true,
		License:        &license,
		Remaining:      remainingTime(license.ExpirationDate, now),
		NewlyActivated: newlyActivated,
	}, nil
}
