// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"license-server/commons"
	"license-server/handlers"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, h *handlers.LicenseHandler) {
	commons.Logger.Debug("Registering api routes")
	api := e.Group("/api")
	api.GET("/licenses", h.ListLicensesHandler)
	api.POST("/add_license", h.AddLicenseHandler)
	api.POST("/toggle_active/:id", h.ToggleActiveHandler)
	api.DELETE("/delete_license/:id", h.DeleteLicenseHandler)
	api.POST("/reset_key", h.ResetKeyHandler)
	api.POST("/check_key_details", h.CheckKeyDetailsHandler)
	api.POST("/generate_key", h.GenerateKeyHandler)
	e.GET("/*", handlers.ServeStaticFile)
	commons.Logger.Info("api routes registered successfully")
}
