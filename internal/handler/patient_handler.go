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

// PatientRequest defines the structure for patient creation/update requests
type PatientRequest struct {
	RegNo    string `json:"RegNo"`
	Name     string `json:"Pname"`
	Address  string `json:"Paddress"`
	Contact  string `json:"Pcontact"`
	Gender   string `json:"Pgender"`
	Age      string `json:"Page"`
	DoctorID *int   `json:"DrOID"`
	Title    string `json:"Tital"`
	Photo    string `json:"photo"`
	MemberID *int   `json:"MemberID"`
	AadharNo string `json:"AdharNo"`
}

// ListPatients retrieves patients for the current tenant with pagination
func ListPatients(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var patients []model.Patient
	result := db.
		Order("\"POID\" desc").
		Limit(limit).
		Offset(offset).
		Find(&patients)
	if result.Error != nil {
		log.Error("Failed to retrieve patients", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve patients"})
	}

	var total int64
	db.Model(&model.Patient{}).Count(&total)

	return c.JSON(http.StatusOK, echo.Map{
		"patients":   patients,
		"pagination": paginationMap(page, limit, total),
	})
}

// CreatePatient registers a new patient in the current tenant's database
func CreatePatient(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req PatientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid patient request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	patient := model.Patient{
		RegNo:    req.RegNo,
		Name:     req.Name,
		Address:  req.Address,
		Contact:  req.Contact,
		Gender:   req.Gender,
		Age:      req.Age,
		DoctorID: req.DoctorID,
		Title:    req.Title,
		Photo:    req.Photo,
		MemberID: req.MemberID,
		AadharNo: req.AadharNo,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&patient); result.Error != nil {
		log.Error("Failed to create patient", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create patient"})
	}

	log.Info("Patient created", zap.Uint("patient_id", patient.ID))
	return c.JSON(http.StatusCreated, patient)
}

// GetPatient retrieves a patient by ID
func GetPatient(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid patient ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var patient model.Patient
	if result := db.First(&patient, uint(id)); result.Error != nil {
		log.Warn("Patient not found", zap.Uint64("patient_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found"})
	}

	return c.JSON(http.StatusOK, patient)
}

// UpdatePatient updates an existing patient
func UpdatePatient(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid patient ID"})
	}

	var patient model.Patient
	if result := db.First(&patient, uint(id)); result.Error != nil {
		log.Warn("Patient not found for update", zap.Uint64("patient_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found"})
	}

	var req PatientRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid patient request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	patient.Name = req.Name
	patient.Address = req.Address
	patient.Contact = req.Contact
	patient.Gender = req.Gender
	patient.Age = req.Age
	patient.DoctorID = req.DoctorID
	patient.Title = req.Title
	patient.Photo = req.Photo

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Save(&patient); result.Error != nil {
		log.Error("Failed to update patient", zap.Uint64("patient_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update patient"})
	}

	log.Info("Patient updated", zap.Uint64("patient_id", id))
	return c.JSON(http.StatusOK, patient)
}

// DeletePatient removes a patient record
func DeletePatient(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid patient ID"})
	}

	var patient model.Patient
	if result := db.First(&patient, uint(id)); result.Error != nil {
		log.Warn("Patient not found for delete", zap.Uint64("patient_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Patient not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if result := db.Delete(&patient); result.Error != nil {
		log.Error("Failed to delete patient", zap.Uint64("patient_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete patient"})
	}

	log.Info("Patient deleted", zap.Uint64("patient_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Patient deleted successfully"})
}

// ListDoctors retrieves every doctor registered in the current tenant's
// database
func ListDoctors(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("doctor", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var doctors []model.Doctor
	if result := db.Find(&doctors); result.Error != nil {
		log.Error("Failed to retrieve doctors", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve doctors"})
	}

	return c.JSON(http.StatusOK, doctors)
}

// ListPatientNames retrieves a compact id/name listing used by pickers
func ListPatientNames(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("patient", "list_names")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var patients []model.Patient
	result := db.Select("\"POID\"", "\"RegNo\"", "\"Pname\"", "\"Pcontact\"").Find(&patients)
	if result.Error != nil {
		log.Error("Failed to retrieve patient list", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve patients"})
	}

	return c.JSON(http.StatusOK, patients)
}
