// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

var spaExtensions = map[string]bool{
	".html":  true,
	".js":    true,
	".css":   true,
	".map":   true,
	".json":  true,
	".txt":   true,
	".png":   true,
	".jpg":   true,
	".jpeg":  true,
	".svg":   true,
	".ico":   true,
	".woff":  true,
	".woff2": true,
}

// ServeStaticFile serves the bundled admin dashboard from public/. Any path
// that does not resolve to a bundled asset falls back to index.html so the
// SPA router can take over.
func ServeStaticFile(c echo.Context) error {
	requestedPath := c.Param("*")

	cleanPath := filepath.Clean(requestedPath)
	if strings.Contains(cleanPath, "..") || strings.HasPrefix(cleanPath, "/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file path")
	}

	publicDir := "public"
	if cleanPath == "." || cleanPath == "" {
		cleanPath = "index.html"
	}
	fullPath := filepath.Join(publicDir, cleanPath)

	absPublicDir, err := filepath.Abs(publicDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to resolve public directory")
	}

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file path")
	}

	if !strings.HasPrefix(absFullPath, absPublicDir+string(os.PathSeparator)) &&
		absFullPath != absPublicDir {
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}

	fileInfo, err := os.Stat(absFullPath)
	if err != nil || fileInfo.IsDir() || !spaExtensions[strings.ToLower(filepath.Ext(absFullPath))] {
		// SPA fallback
		index := filepath.Join(absPublicDir, "index.html")
		if _, statErr := os.Stat(index); statErr != nil {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return c.File(index)
	}

	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")

	return c.File(absFullPath)
}
