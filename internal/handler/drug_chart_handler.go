package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-service/internal/model"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// DrugChartRequest defines the structure for drug chart requests
type DrugChartRequest struct {
	PatientID *int   `json:"POID"`
	Name      string `json:"Name"`
	IPDNo     string `json:"IPDNo"`
	Date      string `json:"Date"`
	Medicine  string `json:"Medicine"`
	Dosage    string `json:"Dosage"`
}

// ListDrugChart retrieves drug chart rows for an IPD admission. Defaults to
// today's chart when no date is given.
func ListDrugChart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("drug_chart", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	query := db.Model(&model.DrugChart{})
	if ipdNo := c.QueryParam("ipdNo"); ipdNo != "" {
		query = query.Where("\"IPDNo\" = ?", ipdNo)
	}

	// Default to today's chart in the server's timezone, not the UTC day.
	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d := c.QueryParam("Date"); d != "" {
		parsed, perr := time.Parse(dateLayout, d)
		if perr != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "Date must be in yyyy-mm-dd format"})
		}
		day = parsed
	}
	query = query.Where("\"Date\" >= ? AND \"Date\" < ?", day, day.Add(24*time.Hour))

	page, limit, offset := parsePagination(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var rows []model.DrugChart
	result := query.Limit(limit).Offset(offset).Find(&rows)
	if result.Error != nil {
		log.Error("Failed to retrieve drug chart rows", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error fetching records"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"drugs":      rows,
		"pagination": paginationMap(page, limit, total),
	})
}

// GetDrugChart retrieves a single drug chart row
func GetDrugChart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("drug_chart", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var row model.DrugChart
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("Drug chart record not found", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	return c.JSON(http.StatusOK, row)
}

// CreateDrugChart stores a new drug chart row
func CreateDrugChart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("drug_chart", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req DrugChartRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid drug chart request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Date == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "Validation failed", "errors": echo.Map{"Date": "required"}})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "Date must be in yyyy-mm-dd format"})
	}

	row := model.DrugChart{
		PatientID: req.PatientID,
		Name:      req.Name,
		IPDNo:     req.IPDNo,
		Date:      date,
		Medicine:  req.Medicine,
		Dosage:    req.Dosage,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&row); result.Error != nil {
		log.Error("Failed to create drug chart record", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create record"})
	}

	log.Info("Drug chart record created", zap.Uint("record_id", row.ID))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Drug record created", "id": row.ID})
}

// UpdateDrugChart applies a partial update to a drug chart row
func UpdateDrugChart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("drug_chart", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	var row model.DrugChart
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("Drug chart record not found for update", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	var req DrugChartRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid drug chart request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	// Only provided fields change
	update := map[string]interface{}{}
	if req.PatientID != nil {
		update["POID"] = *req.PatientID
	}
	if req.Name != "" {
		update["Name"] = req.Name
	}
	if req.IPDNo != "" {
		update["IPDNo"] = req.IPDNo
	}
	if req.Date != "" {
		date, perr := time.Parse(dateLayout, req.Date)
		if perr != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "Date must be in yyyy-mm-dd format"})
		}
		update["Date"] = date
	}
	if req.Medicine != "" {
		update["Medicine"] = req.Medicine
	}
	if req.Dosage != "" {
		update["Dosage"] = req.Dosage
	}

	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No updatable fields provided"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Model(&row).Updates(update); result.Error != nil {
		log.Error("Failed to update drug chart record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Update failed"})
	}

	log.Info("Drug chart record updated", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Drug record updated successfully", "id": id})
}

// DeleteDrugChart removes a drug chart row
func DeleteDrugChart(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("drug_chart", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := db.Delete(&model.DrugChart{}, uint(id))
	if result.Error != nil {
		log.Error("Failed to delete drug chart record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Delete failed"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	log.Info("Drug chart record deleted", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Drug record deleted"})
}
