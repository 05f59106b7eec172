// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"license-server/models"
	"license-server/registry"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestHandler(t *testing.T) (*echo.Echo, *LicenseHandler) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(&models.License{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec("DELETE FROM licenses")
	})
	return echo.New(), NewLicenseHandler(registry.New(conn), nil)
}

func doJSON(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func addLicense(t *testing.T, e *echo.Echo, h *LicenseHandler, body string) AddLicenseResponse {
	t.Helper()
	c, rec := doJSON(e, http.MethodPost, "/api/add_license", body)
	if err := h.AddLicenseHandler(c); err != nil {
		t.Fatalf("AddLicenseHandler failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}
	var resp AddLicenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse add response: %v", err)
	}
	return resp
}

func TestAddLicenseEndpoint(t *testing.T) {
	e, h := newTestHandler(t)

	resp := addLicense(t, e, h, `{"key":"ABC123","subscription_type":"1 Week","key_type":"standard"}`)
	if resp.License.Key != "ABC123" {
		t.Errorf("Expected key ABC123, got %s", resp.License.Key)
	}
	if !resp.License.Active {
		t.Error("Expected new license to be active")
	}
	if resp.License.Activated {
		t.Error("Expected new license to be unactivated")
	}
	if resp.License.DeviceID != nil {
		t.Errorf("Expected no device binding, got %v", *resp.License.DeviceID)
	}
}

func TestAddLicenseMissingFieldReturns400(t *testing.T) {
	e, h := newTestHandler(t)

	c, _ := doJSON(e, http.MethodPost, "/api/add_license", `{"subscription_type":"1 Week","key_type":"standard"}`)
	err := h.AddLicenseHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", httpErr.Code)
	}
}

func TestAddLicenseDuplicateReturns409(t *testing.T) {
	e, h := newTestHandler(t)

	addLicense(t, e, h, `{"key":"DUP1","subscription_type":"1 Week","key_type":"standard"}`)

	c, _ := doJSON(e, http.MethodPost, "/api/add_license", `{"key":"DUP1","subscription_type":"1 Month","key_type":"standard"}`)
	err := h.AddLicenseHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", httpErr.Code)
	}
}

func TestListLicensesEndpoint(t *testing.T) {
	e, h := newTestHandler(t)

	addLicense(t, e, h, `{"key":"L1","subscription_type":"1 Week","key_type":"standard"}`)
	addLicense(t, e, h, `{"key":"L2","subscription_type":"1 Year","key_type":"premium","multi_device":true}`)

	c, rec := doJSON(e, http.MethodGet, "/api/licenses", "")
	if err := h.ListLicensesHandler(c); err != nil {
		t.Fatalf("ListLicensesHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var licenses []LicenseDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &licenses); err != nil {
		t.Fatalf("Failed to parse list response: %v", err)
	}
	if len(licenses) != 2 {
		t.Fatalf("Expected 2 licenses, got %d", len(licenses))
	}
	if !licenses[1].MultiDevice {
		t.Error("Expected second license to be multi-device")
	}
}

func TestToggleActiveEndpoint(t *testing.T) {
	e, h := newTestHandler(t)

	resp := addLicense(t, e, h, `{"key":"TOG1","subscription_type":"1 Week","key_type":"standard"}`)
	id := strconv.FormatUint(uint64(resp.License.ID), 10)

	c, rec := doJSON(e, http.MethodPost, "/api/toggle_active/"+id, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.ToggleActiveHandler(c); err != nil {
		t.Fatalf("ToggleActiveHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var toggled ToggleActiveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("Failed to parse toggle response: %v", err)
	}
	if toggled.License.Active == resp.License.Active {
		t.Error("Expected the active flag to flip")
	}
}

func TestToggleActiveMissingReturns404(t *testing.T) {
	e, h := newTestHandler(t)

	c, _ := doJSON(e, http.MethodPost, "/api/toggle_active/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := h.ToggleActiveHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", httpErr.Code)
	}
}

func TestDeleteLicenseMissingReturns404(t *testing.T) {
	e, h := newTestHandler(t)

	c, _ := doJSON(e, http.MethodDelete, "/api/delete_license/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	err := h.DeleteLicenseHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", httpErr.Code)
	}
}

func TestResetKeyMissingReturns404(t *testing.T) {
	e, h := newTestHandler(t)

	c, _ := doJSON(e, http.MethodPost, "/api/reset_key", `{"key":"MISSING"}`)
	err := h.ResetKeyHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", httpErr.Code)
	}
}

func TestCheckKeyDetailsFlow(t *testing.T) {
	e, h := newTestHandler(t)

	addLicense(t, e, h, `{"key":"FLOW1","subscription_type":"1 Week","key_type":"standard","support_name":"Acme"}`)

	// First check binds dev1 and reports the subscription details.
	c, rec := doJSON(e, http.MethodPost, "/api/check_key_details", `{"key":"FLOW1","device_id":"dev1"}`)
	if err := h.CheckKeyDetailsHandler(c); err != nil {
		t.Fatalf("CheckKeyDetailsHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var first CheckKeyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("Failed to parse check response: %v", err)
	}
	if !first.Valid {
		t.Fatalf("Expected valid result, got reason %q", first.Reason)
	}
	if first.SubscriptionType != "1 Week" || first.SupportName != "Acme" {
		t.Errorf("Unexpected details: %+v", first)
	}
	if first.RemainingTime == nil || first.RemainingTime.Days != 6 {
		t.Errorf("Expected 6 whole days remaining, got %+v", first.RemainingTime)
	}
	if len(first.ExpirationDate) != len("2006-01-02") {
		t.Errorf("Expected date-only expiration, got %q", first.ExpirationDate)
	}

	// A different device is rejected with the conflict reason.
	c, rec = doJSON(e, http.MethodPost, "/api/check_key_details", `{"key":"FLOW1","device_id":"dev2"}`)
	if err := h.CheckKeyDetailsHandler(c); err != nil {
		t.Fatalf("CheckKeyDetailsHandler failed: %v", err)
	}
	var conflict CheckKeyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &conflict); err != nil {
		t.Fatalf("Failed to parse check response: %v", err)
	}
	if conflict.Valid {
		t.Fatal("Expected conflict rejection")
	}
	if conflict.Reason != "This key is already used on another device." {
		t.Errorf("Unexpected reason %q", conflict.Reason)
	}
}

func TestCheckKeyDetailsUnknownKey(t *testing.T) {
	e, h := newTestHandler(t)

	c, rec := doJSON(e, http.MethodPost, "/api/check_key_details", `{"key":"NOPE","device_id":"dev1"}`)
	if err := h.CheckKeyDetailsHandler(c); err != nil {
		t.Fatalf("CheckKeyDetailsHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Business failures should stay 200, got %d", rec.Code)
	}
	var resp CheckKeyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse check response: %v", err)
	}
	if resp.Valid || resp.Reason != "Key not found." {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestGenerateKeyEndpoint(t *testing.T) {
	e, h := newTestHandler(t)

	c, rec := doJSON(e, http.MethodPost, "/api/generate_key", "")
	if err := h.GenerateKeyHandler(c); err != nil {
		t.Fatalf("GenerateKeyHandler failed: %v", err)
	}
	var resp GenerateKeyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse generate response: %v", err)
	}
	if !strings.HasPrefix(resp.Key, "LIC-") {
		t.Errorf("Expected LIC- prefix, got %q", resp.Key)
	}
}
