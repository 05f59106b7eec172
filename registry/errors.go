// SPDX-License-Identifier: GPL-3.0-only

package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("license not found")
	ErrDuplicateKey = errors.New("license key already exists")
)

// ValidationError reports a missing required field on a registry operation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s field is required", e.Field)
}
