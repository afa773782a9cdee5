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

// TreatmentRequest defines the structure for treatment note requests
type TreatmentRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	PatientID    *int   `json:"poid"`
	IPDNo        *int   `json:"IPDNo"`
	Name         string `json:"name"`
	DoctorName   string `json:"drName"`
	ClinicalNote string `json:"clinicalNote"`
	Advice       string `json:"advice"`
	RS           string `json:"rs"`
	CNS          string `json:"cns"`
	CVS          string `json:"cvs"`
}

// ListTreatments retrieves treatment notes for an IPD admission with
// optional substring search
func ListTreatments(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("treatment", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	query := db.Model(&model.Treatment{})
	if ipdNo := c.QueryParam("IPDNo"); ipdNo != "" {
		query = query.Where("\"IPDNo\" = ?", ipdNo)
	}
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			db.Session(&gorm.Session{NewDB: true}).
				Where("\"Name\" LIKE ?", like).
				Or("\"DrName\" LIKE ?", like).
				Or("\"ClinicalNote\" LIKE ?", like),
		)
	}

	page, limit, offset := parsePagination(c)
	if perPage, perr := strconv.Atoi(c.QueryParam("per_page")); perr == nil && perPage > 0 {
		limit = perPage
		offset = (page - 1) * limit
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var rows []model.Treatment
	result := query.
		Order("\"Date\" desc").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if result.Error != nil {
		log.Error("Failed to retrieve treatment rows", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch Treatment rows"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"treatments": rows,
		"pagination": paginationMap(page, limit, total),
	})
}

// GetTreatment retrieves a single treatment note
func GetTreatment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("treatment", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var row model.Treatment
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("Treatment record not found", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	return c.JSON(http.StatusOK, row)
}

// CreateTreatment stores a new treatment note
func CreateTreatment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("treatment", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req TreatmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid treatment request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}

	if req.Date == "" || req.Time == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"message": "Validation failed",
			"errors":  echo.Map{"date": "required", "time": "required"},
		})
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"message": "date must be in yyyy-mm-dd format"})
	}

	row := model.Treatment{
		Date:         date,
		Time:         req.Time,
		PatientID:    req.PatientID,
		IPDNo:        req.IPDNo,
		Name:         req.Name,
		DoctorName:   req.DoctorName,
		ClinicalNote: req.ClinicalNote,
		Advice:       req.Advice,
		RS:           req.RS,
		CNS:          req.CNS,
		CVS:          req.CVS,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&row); result.Error != nil {
		log.Error("Failed to create treatment record", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create record"})
	}

	log.Info("Treatment record created", zap.Uint("record_id", row.ID))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Treatment record created", "id": row.ID})
}

// UpdateTreatment applies a partial update to a treatment note
func UpdateTreatment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("treatment", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	var row model.Treatment
	if result := db.First(&row, uint(id)); result.Error != nil {
		log.Warn("Treatment record not found for update", zap.Uint64("record_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	var req TreatmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid treatment request data", zap.Error(err))
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
	if req.IPDNo != nil {
		update["IPDNo"] = *req.IPDNo
	}
	if req.Name != "" {
		update["Name"] = req.Name
	}
	if req.DoctorName != "" {
		update["DrName"] = req.DoctorName
	}
	if req.ClinicalNote != "" {
		update["ClinicalNote"] = req.ClinicalNote
	}
	if req.Advice != "" {
		update["Advice"] = req.Advice
	}
	if req.RS != "" {
		update["Rs"] = req.RS
	}
	if req.CNS != "" {
		update["Cns"] = req.CNS
	}
	if req.CVS != "" {
		update["Cvs"] = req.CVS
	}

	if len(update) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No updatable fields provided"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Model(&row).Updates(update); result.Error != nil {
		log.Error("Failed to update treatment record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update record"})
	}

	log.Info("Treatment record updated", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Treatment record updated", "id": id})
}

// DeleteTreatment removes a treatment note
func DeleteTreatment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("treatment", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid record ID"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := db.Delete(&model.Treatment{}, uint(id))
	if result.Error != nil {
		log.Error("Failed to delete treatment record", zap.Uint64("record_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete record"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	}

	log.Info("Treatment record deleted", zap.Uint64("record_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Treatment record deleted"})
}
