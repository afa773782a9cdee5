package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clinic-service/pkg/database"
	"clinic-service/prometheus"
)

// HealthCheck reports service liveness and registry database reachability
func HealthCheck(c echo.Context) error {
	registryStatus := "up"
	if db := database.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			registryStatus = "down"
		}
	} else {
		registryStatus = "down"
	}

	status := http.StatusOK
	if registryStatus != "up" {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{
		"status":      "ok",
		"registry_db": registryStatus,
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
