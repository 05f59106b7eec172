// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"license-server/crypto"
	"license-server/events"
	"license-server/models"
	"license-server/registry"

	"github.com/labstack/echo/v4"
)

// LicenseHandler is the HTTP boundary over the license registry. Typed
// registry errors are translated to status codes exactly once, here.
type LicenseHandler struct {
	Registry *registry.Registry
	Events   *events.Publisher
}

func NewLicenseHandler(reg *registry.Registry, pub *events.Publisher) *LicenseHandler {
	return &LicenseHandler{Registry: reg, Events: pub}
}

func licenseDetails(license *models.License) LicenseDetails {
	return LicenseDetails{
		ID:               license.ID,
		Key:              license.Key,
		Active:           license.Active,
		ExpirationDate:   license.ExpirationDate.Format(time.RFC3339),
		SubscriptionType: license.SubscriptionType,
		SupportName:      license.SupportName,
		DeviceID:         license.DeviceID,
		Activated:        license.Activated,
		KeyType:          license.KeyType,
		MultiDevice:      license.MultiDevice,
	}
}

func registryHTTPError(err error) *echo.HTTPError {
	var validationErr *registry.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: validationErr.Error(),
		}
	case errors.Is(err, registry.ErrDuplicateKey):
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A license with this key already exists. Please try another one.",
		}
	case errors.Is(err, registry.ErrNotFound):
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "License not found",
		}
	default:
		return echo.ErrInternalServerError
	}
}

// ListLicensesHandler godoc
// @Summary      List all licenses
// @Description  Returns every license record in store order.
// @Tags         licenses
// @Produce      json
// @Success      200 {array} LicenseDetails "Licenses retrieved successfully"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/licenses [get]
func (h *LicenseHandler) ListLicensesHandler(c echo.Context) error {
	logger := c.Logger()

	licenses, err := h.Registry.List()
	if err != nil {
		logger.Error("Failed to list licenses:", err)
		return echo.ErrInternalServerError
	}

	details := make([]LicenseDetails, 0, len(licenses))
	for i := range licenses {
		details = append(details, licenseDetails(&licenses[i]))
	}
	return c.JSON(http.StatusOK, details)
}

// AddLicenseHandler godoc
// @Summary      Register a license key
// @Description  Creates a license whose expiration date is computed from the
// @Description  subscription type, or from the days/hours fields for custom plans.
// @Tags         licenses
// @Accept       json
// @Produce      json
// @Param        body  body  AddLicenseRequest  true  "License to register"
// @Success      201 {object} AddLicenseResponse "License added successfully"
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      409 {object} echo.HTTPError "Conflict"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/add_license [post]
func (h *LicenseHandler) AddLicenseHandler(c echo.Context) error {
	logger := c.Logger()

	var req AddLicenseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid add license request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	license, err := h.Registry.Add(registry.AddParams{
		Key:              req.Key,
		SubscriptionType: req.SubscriptionType,
		SupportName:      req.SupportName,
		KeyType:          req.KeyType,
		MultiDevice:      req.MultiDevice,
		Days:             req.Days,
		Hours:            req.Hours,
	})
	if err != nil {
		logger.Error("Failed to add license:", err)
		return registryHTTPError(err)
	}

	h.Events.Publish(events.LicenseCreated, license.Key, nil)
	logger.Infof("License created successfully.")
	return c.JSON(http.StatusCreated, AddLicenseResponse{
		Message: "License added successfully",
		License: licenseDetails(license),
	})
}

// ToggleActiveHandler godoc
// @Summary      Toggle a license's active flag
// @Tags         licenses
// @Produce      json
// @Param        id  path  int  true  "License ID"
// @Success      200 {object} ToggleActiveResponse "License status toggled successfully"
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/toggle_active/{id} [post]
func (h *LicenseHandler) ToggleActiveHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid license id:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "License not found",
		}
	}

	license, err := h.Registry.ToggleActive(uint(id))
	if err != nil {
		logger.Error("Failed to toggle license:", err)
		return registryHTTPError(err)
	}

	h.Events.Publish(events.LicenseToggled, license.Key, nil)
	return c.JSON(http.StatusOK, ToggleActiveResponse{
		Message: "License status toggled successfully",
		License: licenseDetails(license),
	})
}

// DeleteLicenseHandler godoc
// @Summary      Delete a license permanently
// @Tags         licenses
// @Produce      json
// @Param        id  path  int  true  "License ID"
// @Success      200 {object} GenericResponse "License deleted successfully"
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/delete_license/{id} [delete]
func (h *LicenseHandler) DeleteLicenseHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		logger.Error("Invalid license id:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "License not found",
		}
	}

	license, err := h.Registry.Delete(uint(id))
	if err != nil {
		logger.Error("Failed to delete license:", err)
		return registryHTTPError(err)
	}

	h.Events.Publish(events.LicenseDeleted, license.Key, nil)
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "License deleted successfully",
	})
}

// ResetKeyHandler godoc
// @Summary      Unbind a license key from its device
// @Description  Clears the device binding and the activated flag so the key
// @Description  can be activated again on a new device.
// @Tags         licenses
// @Accept       json
// @Produce      json
// @Param        body  body  ResetKeyRequest  true  "Key to reset"
// @Success      200 {object} GenericResponse "Key reset successfully"
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      404 {object} echo.HTTPError "Not Found"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/reset_key [post]
func (h *LicenseHandler) ResetKeyHandler(c echo.Context) error {
	logger := c.Logger()

	var req ResetKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid reset key request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if req.Key == "" {
		logger.Error("Key is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "key field is required",
		}
	}

	license, err := h.Registry.ResetKey(req.Key)
	if err != nil {
		logger.Error("Failed to reset key:", err)
		return registryHTTPError(err)
	}

	h.Events.Publish(events.LicenseReset, license.Key, nil)
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "Key reset successfully",
	})
}

// CheckKeyDetailsHandler godoc
// @Summary      Validate a license key from a device
// @Description  Binds the key to the device on first use, then reports whether
// @Description  the key is currently valid. Business rejections (unknown key,
// @Description  device conflict, inactive or expired) return 200 with valid:false.
// @Tags         licenses
// @Accept       json
// @Produce      json
// @Param        body  body  CheckKeyRequest  true  "Key and device checking in"
// @Success      200 {object} CheckKeyResponse "Validation outcome"
// @Failure      400 {object} echo.HTTPError "Bad Request"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/check_key_details [post]
func (h *LicenseHandler) CheckKeyDetailsHandler(c echo.Context) error {
	logger := c.Logger()

	var req CheckKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid check key request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if req.Key == "" {
		logger.Error("Key is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "key field is required",
		}
	}
	if req.DeviceID == "" {
		logger.Error("Device ID is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "device_id field is required",
		}
	}

	result, err := h.Registry.CheckKeyDetails(req.Key, req.DeviceID)
	if err != nil {
		logger.Error("Failed to check key:", err)
		return echo.ErrInternalServerError
	}

	if result.NewlyActivated {
		h.Events.Publish(events.LicenseActivated, req.Key, &req.DeviceID)
	}

	if !result.Valid {
		return c.JSON(http.StatusOK, CheckKeyResponse{
			Valid:  false,
			Reason: result.Reason,
		})
	}

	license := result.License
	remaining := RemainingTimeDetails{
		Days:    result.Remaining.Days,
		Hours:   result.Remaining.Hours,
		Minutes: result.Remaining.Minutes,
	}
	multiDevice := license.MultiDevice
	return c.JSON(http.StatusOK, CheckKeyResponse{
		Valid:            true,
		ExpirationDate:   license.ExpirationDate.Format("2006-01-02"),
		SubscriptionType: license.SubscriptionType,
		SupportName:      license.SupportName,
		RemainingTime:    &remaining,
		MultiDevice:      &multiDevice,
	})
}

// GenerateKeyHandler godoc
// @Summary      Generate a fresh license key
// @Description  Returns a random unregistered key for the dashboard to
// @Description  prefill. Nothing is persisted.
// @Tags         licenses
// @Produce      json
// @Success      200 {object} GenerateKeyResponse "Key generated successfully"
// @Failure      500 {object} echo.HTTPError "Internal Server Error"
// @Router       /api/generate_key [post]
func (h *LicenseHandler) GenerateKeyHandler(c echo.Context) error {
	logger := c.Logger()

	key, err := crypto.GenerateLicenseKey()
	if err != nil {
		logger.Error("Failed to generate license key:", err)
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, GenerateKeyResponse{Key: key})
}
