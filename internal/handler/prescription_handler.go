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

const dateLayout = "2006-01-02"

// PrescriptionRequest defines the structure for prescription requests
type PrescriptionRequest struct {
	PrescriptionNo *int   `json:"PrescriptionNo"`
	Date           string `json:"Date"`
	PatientID      *int   `json:"POID"`
	History        string `json:"History"`
	ItemName       string `json:"ItemName"`
	ContentName    string `json:"ContentName"`
	Total          string `json:"Total"`
	Notes          string `json:"Notes"`
	Advice         string `json:"Advice"`
	ApDate         string `json:"ApDate"`
	CC             string `json:"cc"`
	CF             string `json:"cf"`
	GE             string `json:"ge"`
	Inv            string `json:"inv"`
	Name           string `json:"Name"`
}

func (r *PrescriptionRequest) validate() (date time.Time, apDate *time.Time, err error) {
	if r.PrescriptionNo == nil || r.Date == "" || r.PatientID == nil || r.Name == "" {
		return time.Time{}, nil, echo.NewHTTPError(http.StatusUnprocessableEntity,
			"PrescriptionNo, Date, POID and Name are required")
	}
	date, err = time.Parse(dateLayout, r.Date)
	if err != nil {
		return time.Time{}, nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "Date must be in yyyy-mm-dd format")
	}
	if r.ApDate != "" {
		parsed, perr := time.Parse(dateLayout, r.ApDate)
		if perr != nil {
			return time.Time{}, nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "ApDate must be in yyyy-mm-dd format")
		}
		apDate = &parsed
	}
	return date, apDate, nil
}

// prescriptionSearch applies the substring search the listing endpoints share
func prescriptionSearch(db *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return db
	}
	like := "%" + search + "%"
	return db.Where(
		db.Session(&gorm.Session{NewDB: true}).
			Where("CAST(\"PrescriptionNo\" AS TEXT) LIKE ?", like).
			Or("\"History\" LIKE ?", like).
			Or("\"ItemName\" LIKE ?", like).
			Or("\"ContentName\" LIKE ?", like).
			Or("\"Name\" LIKE ?", like),
	)
}

// ListPrescriptions retrieves prescriptions with optional substring search
func ListPrescriptions(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)

	// The index shows each patient once, carrying their latest prescription.
	latest := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.Prescription{}).
		Select("MAX(\"prescriptionOID\")").
		Group("POID")
	query := prescriptionSearch(db.Model(&model.Prescription{}), c.QueryParam("search")).
		Where("\"prescriptionOID\" IN (?)", latest)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var prescriptions []model.Prescription
	result := query.
		Order("\"Date\" desc").
		Limit(limit).
		Offset(offset).
		Find(&prescriptions)
	if result.Error != nil {
		log.Error("Failed to retrieve prescriptions", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve prescriptions"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"prescriptions": prescriptions,
		"pagination":    paginationMap(page, limit, total),
	})
}

// ListPrescriptionsByPatient retrieves one patient's prescriptions
func ListPrescriptionsByPatient(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "list_by_patient")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	patientID, err := strconv.Atoi(c.Param("patient_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid patient ID"})
	}

	page, limit, offset := parsePagination(c)
	query := prescriptionSearch(
		db.Model(&model.Prescription{}).Where("\"POID\" = ?", patientID),
		c.QueryParam("search"),
	)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query.Count(&total)

	var prescriptions []model.Prescription
	result := query.
		Order("\"Date\" desc").
		Limit(limit).
		Offset(offset).
		Find(&prescriptions)
	if result.Error != nil {
		log.Error("Failed to retrieve prescriptions",
			zap.Int("patient_id", patientID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve prescriptions"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"prescriptions": prescriptions,
		"pagination":    paginationMap(page, limit, total),
	})
}

// CreatePrescription stores a new prescription
func CreatePrescription(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req PrescriptionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid prescription request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	date, apDate, err := req.validate()
	if err != nil {
		return err
	}

	prescription := model.Prescription{
		PrescriptionNo: *req.PrescriptionNo,
		Date:           date,
		PatientID:      *req.PatientID,
		History:        req.History,
		ItemName:       req.ItemName,
		ContentName:    req.ContentName,
		Total:          req.Total,
		Notes:          req.Notes,
		Advice:         req.Advice,
		ApDate:         apDate,
		CC:             req.CC,
		CF:             req.CF,
		GE:             req.GE,
		Inv:            req.Inv,
		Name:           req.Name,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&prescription); result.Error != nil {
		log.Error("Failed to create prescription", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create prescription"})
	}

	log.Info("Prescription created",
		zap.Uint("prescription_id", prescription.ID),
		zap.Int("patient_id", prescription.PatientID))
	return c.JSON(http.StatusCreated, prescription)
}

// GetPrescription retrieves a prescription by ID
func GetPrescription(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid prescription ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var prescription model.Prescription
	if result := db.First(&prescription, uint(id)); result.Error != nil {
		log.Warn("Prescription not found", zap.Uint64("prescription_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Prescription not found"})
	}

	return c.JSON(http.StatusOK, prescription)
}

// UpdatePrescription updates an existing prescription
func UpdatePrescription(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid prescription ID"})
	}

	var prescription model.Prescription
	if result := db.First(&prescription, uint(id)); result.Error != nil {
		log.Warn("Prescription not found for update", zap.Uint64("prescription_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Prescription not found"})
	}

	var req PrescriptionRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid prescription request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	date, apDate, err := req.validate()
	if err != nil {
		return err
	}

	prescription.PrescriptionNo = *req.PrescriptionNo
	prescription.Date = date
	prescription.PatientID = *req.PatientID
	prescription.History = req.History
	prescription.ItemName = req.ItemName
	prescription.ContentName = req.ContentName
	prescription.Total = req.Total
	prescription.Notes = req.Notes
	prescription.Advice = req.Advice
	prescription.ApDate = apDate
	prescription.CC = req.CC
	prescription.CF = req.CF
	prescription.GE = req.GE
	prescription.Inv = req.Inv
	prescription.Name = req.Name

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Save(&prescription); result.Error != nil {
		log.Error("Failed to update prescription", zap.Uint64("prescription_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update prescription"})
	}

	log.Info("Prescription updated", zap.Uint64("prescription_id", id))
	return c.JSON(http.StatusOK, prescription)
}

// DeletePrescription removes a prescription
func DeletePrescription(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("prescription", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid prescription ID"})
	}

	var prescription model.Prescription
	if result := db.First(&prescription, uint(id)); result.Error != nil {
		log.Warn("Prescription not found for delete", zap.Uint64("prescription_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Prescription not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if result := db.Delete(&prescription); result.Error != nil {
		log.Error("Failed to delete prescription", zap.Uint64("prescription_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete prescription"})
	}

	log.Info("Prescription deleted", zap.Uint64("prescription_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Prescription deleted successfully"})
}
