package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-service/internal/model"
)

func TestListPrescriptionsTotalOnLaterPages(t *testing.T) {
	db := newTenantDB(t)
	for i := 1; i <= 30; i++ {
		require.NoError(t, db.Create(&model.Prescription{
			PrescriptionNo: i,
			Date:           time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			PatientID:      i,
			Name:           fmt.Sprintf("Patient %02d", i),
		}).Error)
	}

	c, rec := newTenantContext(t, db, http.MethodGet, "/prescriptions?page=2&limit=20", nil)
	require.NoError(t, ListPrescriptions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prescriptions []model.Prescription `json:"prescriptions"`
		Pagination    struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Prescriptions, 10)
	assert.Equal(t, int64(30), resp.Pagination.Total, "total must count all matches, not the page")
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestListPrescriptionsOneRowPerPatient(t *testing.T) {
	db := newTenantDB(t)
	for _, p := range []model.Prescription{
		{PrescriptionNo: 1, PatientID: 1, Name: "Asha Verma",
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), ItemName: "Old course"},
		{PrescriptionNo: 2, PatientID: 1, Name: "Asha Verma",
			Date: time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC), ItemName: "New course"},
		{PrescriptionNo: 3, PatientID: 2, Name: "Ravi Kumar",
			Date: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), ItemName: "Single course"},
	} {
		row := p
		require.NoError(t, db.Create(&row).Error)
	}

	c, rec := newTenantContext(t, db, http.MethodGet, "/prescriptions", nil)
	require.NoError(t, ListPrescriptions(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prescriptions []model.Prescription `json:"prescriptions"`
		Pagination    struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Prescriptions, 2, "index shows each patient once")
	assert.Equal(t, int64(2), resp.Pagination.Total)

	// The row kept for a patient is their latest prescription.
	byPatient := map[int]model.Prescription{}
	for _, p := range resp.Prescriptions {
		byPatient[p.PatientID] = p
	}
	assert.Equal(t, "New course", byPatient[1].ItemName)
	assert.Equal(t, "Single course", byPatient[2].ItemName)
}

func TestListPrescriptionsByPatient(t *testing.T) {
	db := newTenantDB(t)
	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&model.Prescription{
			PrescriptionNo: i, PatientID: 1, Name: "Asha Verma",
			Date: time.Date(2026, 9, i, 0, 0, 0, 0, time.UTC),
		}).Error)
	}
	require.NoError(t, db.Create(&model.Prescription{
		PrescriptionNo: 9, PatientID: 2, Name: "Ravi Kumar",
		Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}).Error)

	c, rec := newTenantContext(t, db, http.MethodGet, "/patients/1/prescriptions?page=1&limit=2", nil)
	c.SetParamNames("patient_id")
	c.SetParamValues("1")
	require.NoError(t, ListPrescriptionsByPatient(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Prescriptions []model.Prescription `json:"prescriptions"`
		Pagination    struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// The per-patient history keeps every prescription, unlike the index.
	assert.Len(t, resp.Prescriptions, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	for _, p := range resp.Prescriptions {
		assert.Equal(t, 1, p.PatientID)
	}
}
