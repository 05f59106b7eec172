// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model AddLicenseRequest
type AddLicenseRequest struct {
	// License key to register
	// required: true
	Key string `json:"key" example:"LIC-0F3A2B1C4D5E6F70"`
	// Subscription type: one of "1 Week", "1 Month", "3 Months", "6 Months",
	// "1 Year", or any other label for a custom day/hour duration
	// required: true
	SubscriptionType string `json:"subscription_type" example:"1 Month"`
	// Optional free-text support annotation
	SupportName string `json:"support_name" example:"Acme Corp"`
	// Classification label for the key
	// required: true
	KeyType string `json:"key_type" example:"standard"`
	// Whether the key may be used on any number of devices
	MultiDevice bool `json:"multi_device" example:"false"`
	// Custom duration days (custom subscription types only)
	Days int `json:"days" example:"0"`
	// Custom duration hours (custom subscription types only)
	Hours int `json:"hours" example:"0"`
}

// swagger:model LicenseDetails
type LicenseDetails struct {
	// License record identifier
	ID uint `json:"id" example:"1"`
	// License key
	Key string `json:"key" example:"LIC-0F3A2B1C4D5E6F70"`
	// Administrator kill switch
	Active bool `json:"active" example:"true"`
	// Expiration timestamp, ISO-8601
	ExpirationDate string `json:"expiration_date" example:"2025-02-01T12:00:00Z"`
	// Subscription type label
	SubscriptionType string `json:"subscription_type" example:"1 Month"`
	// Support annotation
	SupportName string `json:"support_name" example:"Acme Corp"`
	// Device currently bound to the key, null until first activation
	DeviceID *string `json:"device_id" example:"dev-9f8e7d"`
	// Whether the key has been bound to a device
	Activated bool `json:"activated" example:"false"`
	// Classification label
	KeyType string `json:"key_type" example:"standard"`
	// Whether the key bypasses the single-device check
	MultiDevice bool `json:"multi_device" example:"false"`
}

// swagger:model AddLicenseResponse
type AddLicenseResponse struct {
	// Message indicating successful creation
	Message string `json:"message" example:"License added successfully"`
	// The created license
	License LicenseDetails `json:"license"`
}

// swagger:model ToggleActiveResponse
type ToggleActiveResponse struct {
	// Message indicating the toggle was applied
	Message string `json:"message" example:"License status toggled successfully"`
	// The updated license
	License LicenseDetails `json:"license"`
}

// swagger:model ResetKeyRequest
type ResetKeyRequest struct {
	// License key to unbind
	// required: true
	Key string `json:"key" example:"LIC-0F3A2B1C4D5E6F70"`
}

// swagger:model CheckKeyRequest
type CheckKeyRequest struct {
	// License key to validate
	// required: true
	Key string `json:"key" example:"LIC-0F3A2B1C4D5E6F70"`
	// Identifier of the device checking in
	// required: true
	DeviceID string `json:"device_id" example:"dev-9f8e7d"`
}

// swagger:model RemainingTimeDetails
type RemainingTimeDetails struct {
	// Whole days until expiration
	Days int `json:"days" example:"22"`
	// Hours derived from the sub-day remainder
	Hours int `json:"hours" example:"4"`
	// Minute count folded modulo 60
	Minutes int `json:"minutes" example:"37"`
}

// swagger:model CheckKeyResponse
type CheckKeyResponse struct {
	// Whether the key is valid for this device right now
	Valid bool `json:"valid" example:"true"`
	// Rejection reason, present only when valid is false
	Reason string `json:"reason,omitempty" example:"Key not found."`
	// Expiration date, date-only, present only when valid
	ExpirationDate string `json:"expiration_date,omitempty" example:"2025-02-01"`
	// Subscription type, present only when valid
	SubscriptionType string `json:"subscription_type,omitempty" example:"1 Month"`
	// Support annotation, present only when valid
	SupportName string `json:"support_name,omitempty" example:"Acme Corp"`
	// Countdown to expiration, present only when valid
	RemainingTime *RemainingTimeDetails `json:"remaining_time,omitempty"`
	// Whether the key bypasses the single-device check, present only when valid
	MultiDevice *bool `json:"multi_device,omitempty" example:"false"`
}

// swagger:model GenerateKeyResponse
type GenerateKeyResponse struct {
	// Freshly generated, unregistered license key
	Key string `json:"key" example:"LIC-0F3A2B1C4D5E6F70"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}
