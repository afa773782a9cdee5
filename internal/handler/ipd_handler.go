package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"clinic-service/internal/model"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// ListCurrentIPD retrieves currently admitted in-patients with optional
// substring search over name, room and IPD number
func ListCurrentIPD(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("current_ipd", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	query := db.Model(&model.CurrentIPD{})
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("\"Name\" LIKE ?", like).
				Or("\"Room\" LIKE ?", like).
				Or("\"IPDNO\" LIKE ?", like),
		)
	}

	page, limit, offset := parsePagination(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var rows []model.CurrentIPD
	result := query.Limit(limit).Offset(offset).Find(&rows)
	if result.Error != nil {
		log.Error("Failed to retrieve current IPD rows", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch records"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"current_ipd": rows,
		"pagination":  paginationMap(page, limit, total),
	})
}

// DeleteCurrentIPD discharges an in-patient record
func DeleteCurrentIPD(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("current_ipd", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := db.Delete(&model.CurrentIPD{}, uint(id))
	if result.Error != nil {
		log.Error("Failed to delete current IPD record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete record"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	log.Info("Current IPD record deleted", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "IPD record deleted"})
}
