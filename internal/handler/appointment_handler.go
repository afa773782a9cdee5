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

// appointmentDateLayout is the dd/mm/yyyy format the booking frontend sends
const appointmentDateLayout = "02/01/2006"

// AppointmentRequest defines the structure for appointment requests
type AppointmentRequest struct {
	Date       string `json:"Date"`
	PatientID  string `json:"POID"`
	Name       string `json:"Name"`
	Contact    string `json:"Contact"`
	DoctorID   string `json:"DROID"`
	DoctorName string `json:"DrName"`
}

func (r *AppointmentRequest) validate() (time.Time, error) {
	if r.Date == "" || r.PatientID == "" || r.Name == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "Date, POID and Name are required")
	}
	date, err := time.Parse(appointmentDateLayout, r.Date)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusUnprocessableEntity, "Date must be in dd/mm/yyyy format")
	}
	return date, nil
}

// ListAppointments retrieves appointments for the current tenant with
// pagination
func ListAppointments(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("appointment", "list")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	page, limit, offset := parsePagination(c)

	defer prometheus.TrackDBOperation("query")(time.Now())

	var appointments []model.Appointment
	result := db.
		Order("\"Date\" desc").
		Limit(limit).
		Offset(offset).
		Find(&appointments)
	if result.Error != nil {
		log.Error("Failed to retrieve appointments", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve appointments"})
	}

	var total int64
	db.Model(&model.Appointment{}).Count(&total)

	return c.JSON(http.StatusOK, echo.Map{
		"appointments": appointments,
		"pagination":   paginationMap(page, limit, total),
	})
}

// CreateAppointment books a new appointment
func CreateAppointment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("appointment", "create")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid appointment request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	date, err := req.validate()
	if err != nil {
		return err
	}

	appointment := model.Appointment{
		Date:       date,
		PatientID:  req.PatientID,
		Name:       req.Name,
		Contact:    req.Contact,
		DoctorID:   req.DoctorID,
		DoctorName: req.DoctorName,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	if result := db.Create(&appointment); result.Error != nil {
		log.Error("Failed to create appointment", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create appointment"})
	}

	log.Info("Appointment created",
		zap.Uint("appointment_id", appointment.ID),
		zap.String("patient", appointment.Name))
	return c.JSON(http.StatusCreated, appointment)
}

// GetAppointment retrieves an appointment by ID
func GetAppointment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("appointment", "get")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid appointment ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())

	var appointment model.Appointment
	if result := db.First(&appointment, uint(id)); result.Error != nil {
		log.Warn("Appointment not found", zap.Uint64("appointment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Appointment not found"})
	}

	return c.JSON(http.StatusOK, appointment)
}

// UpdateAppointment updates an existing appointment
func UpdateAppointment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("appointment", "update")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid appointment ID"})
	}

	var appointment model.Appointment
	if result := db.First(&appointment, uint(id)); result.Error != nil {
		log.Warn("Appointment not found for update", zap.Uint64("appointment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Appointment not found"})
	}

	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid appointment request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	date, err := req.validate()
	if err != nil {
		return err
	}

	appointment.Date = date
	appointment.PatientID = req.PatientID
	appointment.Name = req.Name
	appointment.Contact = req.Contact
	appointment.DoctorID = req.DoctorID
	appointment.DoctorName = req.DoctorName

	defer prometheus.TrackDBOperation("update")(time.Now())

	if result := db.Save(&appointment); result.Error != nil {
		log.Error("Failed to update appointment", zap.Uint64("appointment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update appointment"})
	}

	log.Info("Appointment updated", zap.Uint64("appointment_id", id))
	return c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes an appointment
func DeleteAppointment(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordResourceOperation("appointment", "delete")

	db, err := tenantDB(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid appointment ID"})
	}

	var appointment model.Appointment
	if result := db.First(&appointment, uint(id)); result.Error != nil {
		log.Warn("Appointment not found for delete", zap.Uint64("appointment_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Appointment not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if result := db.Delete(&appointment); result.Error != nil {
		log.Error("Failed to delete appointment", zap.Uint64("appointment_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete appointment"})
	}

	log.Info("Appointment deleted", zap.Uint64("appointment_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment deleted successfully"})
}
