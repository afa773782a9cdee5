package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-service/internal/model"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// ListUsers retrieves the staff users of the current tenant's database
func ListUsers(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("user", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []model.TenantUser
	if result := db.Find(&users); result.Error != nil {
		log.Error("Failed to retrieve users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}
