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

// TPRRequest defines the structure for vitals (TPR) requests
type TPRRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	PatientID   *int   `json:"poid"`
	Name        string `json:"name"`
	IPDNo       string `json:"ipdNo"`
	Temperature string `json:"t"`
	Pulse       string `json:"p"`
	Respiration string `json:"r"`
	BP          string `json:"bp"`
	Intake      string `json:"it"`
	Output      string `json:"op"`
	Complaint   string `json:"c"`
	Action      string `json:"a"`
}

// ListTPR retrieves vitals rows with ipdNo and substring filters, most
// recent first
func ListTPR(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tpr", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	query := db.Model(&model.TPR{})
	if ipdNo := c.QueryParam("ipdNo"); ipdNo != "" {
		query = query.Where("\"IPDNo\" = ?", ipdNo)
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("\"Name\" LIKE ?", like).
				Or("\"IPDNo\" LIKE ?", like).
				Or("\"bp\" LIKE ?", like).
				Or("\"a\" LIKE ?", like),
		)
	}

	page, limit, offset := parsePagination(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var rows []model.TPR
	result := query.
		Order("\"Time\" desc").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if result.Error != nil {
		log.Error("Failed to retrieve TPR rows", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch TPR rows"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tpr":        rows,
		"pagination": paginationMap(page, limit, total),
	})
}

// GetTPR retrieves a single vitals row
func GetTPR(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tpr", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var row model.TPR
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("TPR record not found", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	return c.JSON(http.StatusOK, row)
}

// CreateTPR stores a new vitals row
func CreateTPR(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tpr", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req TPRRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid TPR request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Date == "" || req.IPDNo == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Validation failed",
			"errors":  echo.Map{"date": "required", "ipdNo": "required"},
		})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "date must be in yyyy-mm-dd format"})
	}

	row := model.TPR{
		Date:        date,
		Time:        req.Time,
		PatientID:   req.PatientID,
		Name:        req.Name,
		IPDNo:       req.IPDNo,
		Temperature: req.Temperature,
		Pulse:       req.Pulse,
		Respiration: req.Respiration,
		BP:          req.BP,
		Intake:      req.Intake,
		Output:      req.Output,
		Complaint:   req.Complaint,
		Action:      req.Action,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&row); result.Error != nil {
		log.Error("Failed to create TPR record", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create TPR record"})
	}

	log.Info("TPR record created", zap.Uint("record_id", row.ID), zap.String("ipd_no", row.IPDNo))
	return c.JSON(http.StatusCreated, echo.Map{"message": "TPR record created", "id": row.ID})
}

// UpdateTPR applies a partial update to a vitals row
func UpdateTPR(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tpr", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	var row model.TPR
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("TPR record not found for update", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	var req TPRRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid TPR request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	update := map[string]interface{}{}
	if req.Date != "" {
		date, perr := time.Parse(dateLayout, req.Date)
		if perr != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "date must be in yyyy-mm-dd format"})
		}
		update["Date"] = date
	}
	if req.Time != "" {
		update["Time"] = req.Time
	}
	if req.PatientID != nil {
		update["POID"] = *req.PatientID
	}
	if req.Name != "" {
		update["Name"] = req.Name
	}
	if req.IPDNo != "" {
		update["IPDNo"] = req.IPDNo
	}
	if req.Temperature != "" {
		update["T"] = req.Temperature
	}
	if req.Pulse != "" {
		update["P"] = req.Pulse
	}
	if req.Respiration != "" {
		update["R"] = req.Respiration
	}
	if req.BP != "" {
		update["bp"] = req.BP
	}
	if req.Intake != "" {
		update["it"] = req.Intake
	}
	if req.Output != "" {
		update["op"] = req.Output
	}
	if req.Complaint != "" {
		update["c"] = req.Complaint
	}
	if req.Action != "" {
		update["a"] = req.Action
	}

	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No updatable fields provided"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Model(&row).Updates(update); result.Error != nil {
		log.Error("Failed to update TPR record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update record"})
	}

	log.Info("TPR record updated", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "TPR record updated", "id": id})
}

// DeleteTPR removes a vitals row
func DeleteTPR(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("tpr", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := db.Delete(&model.TPR{}, uint(id))
	if result.Error != nil {
		log.Error("Failed to delete TPR record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete record"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	log.Info("TPR record deleted", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "TPR record deleted"})
}
