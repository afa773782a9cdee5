package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-service/internal/model"
)

func TestCreateAppointment(t *testing.T) {
	db := newTenantDB(t)

	c, rec := newTenantContext(t, db, http.MethodPost, "/appointments",
		jsonBody(`{"Date":"15/09/2026","POID":"12","Name":"Asha Verma","Contact":"9876500000","DROID":"3","DrName":"Dr. Rao"}`))
	require.NoError(t, CreateAppointment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored model.Appointment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), stored.Date)
	assert.Equal(t, "12", stored.PatientID)
}

func TestCreateAppointmentValidation(t *testing.T) {
	db := newTenantDB(t)

	t.Run("missing fields", func(t *testing.T) {
		c, _ := newTenantContext(t, db, http.MethodPost, "/appointments",
			jsonBody(`{"Date":"15/09/2026"}`))
		err := CreateAppointment(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})

	t.Run("bad date format", func(t *testing.T) {
		c, _ := newTenantContext(t, db, http.MethodPost, "/appointments",
			jsonBody(`{"Date":"2026-09-15","POID":"12","Name":"Asha Verma"}`))
		err := CreateAppointment(c)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})

	var count int64
	db.Model(&model.Appointment{}).Count(&count)
	assert.Zero(t, count, "rejected requests must not write rows")
}

func TestUpdateAppointment(t *testing.T) {
	db := newTenantDB(t)
	require.NoError(t, db.Create(&model.Appointment{
		Date: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Name: "Asha Verma", PatientID: "12",
	}).Error)

	c, rec := newTenantContext(t, db, http.MethodPut, "/appointments/1",
		jsonBody(`{"Date":"16/09/2026","POID":"12","Name":"Asha Verma","DrName":"Dr. Iyer"}`))
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, UpdateAppointment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored model.Appointment
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), stored.Date)
	assert.Equal(t, "Dr. Iyer", stored.DoctorName)
}

func TestListAppointments(t *testing.T) {
	db := newTenantDB(t)
	for day := 1; day <= 3; day++ {
		require.NoError(t, db.Create(&model.Appointment{
			Date: time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC),
			Name: "P", PatientID: "1",
		}).Error)
	}

	c, rec := newTenantContext(t, db, http.MethodGet, "/appointments", nil)
	require.NoError(t, ListAppointments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Appointments []model.Appointment `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Appointments, 3)
	assert.True(t, resp.Appointments[0].Date.After(resp.Appointments[2].Date), "latest appointment first")
}
