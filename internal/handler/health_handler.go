package handler

import (
	"net/http"

	"github.com/alecruz/nacho-backend/prometheus"
	"github.com/labstack/echo/v4"
)

// Root is a simple liveness ping kept for backwards compatibility
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "Backend funcionando"})
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "nacho-backend",
	})
}

// Metrics exposes the Prometheus registry
func Metrics(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}
