// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"license-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Early imports stored unbound devices as empty strings
			// instead of NULL, which made the conflict check reject
			// every device on those keys.
			ID: "001_normalize_blank_device_ids",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.License{}).
					Where("device_id = ?", "").
					Update("device_id", nil).Error; err != nil {
					return fmt.Errorf("failed to normalize blank device ids: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
		{
			// A single-device key marked activated without a bound
			// device is unreachable state; clear the flag so the next
			// check-in binds normally.
			ID: "002_clear_stale_activations",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.License{}).
					Where("activated = ? AND device_id IS NULL AND multi_device = ?", true, false).
					Update("activated", false).Error; err != nil {
					return fmt.Errorf("failed to clear stale activations: %w", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
