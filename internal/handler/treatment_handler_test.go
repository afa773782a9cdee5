package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-service/internal/model"
)

func ipdRef(n int) *int { return &n }

func TestListTreatmentsTotalOnLaterPages(t *testing.T) {
	db := newTenantDB(t)
	for i := 1; i <= 25; i++ {
		require.NoError(t, db.Create(&model.Treatment{
			Date:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Time:  "08:00",
			IPDNo: ipdRef(7),
			Name:  "Asha Verma",
		}).Error)
	}

	c, rec := newTenantContext(t, db, http.MethodGet, "/treatments?IPDNo=7&page=2&limit=20", nil)
	require.NoError(t, ListTreatments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Treatments []model.Treatment `json:"treatments"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Treatments, 5)
	assert.Equal(t, int64(25), resp.Pagination.Total, "total must count all matches, not the page")
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestCreateTreatmentRequiresDateAndTime(t *testing.T) {
	c, rec := newTenantContext(t, newTenantDB(t), http.MethodPost, "/treatments",
		jsonBody(`{"name":"Asha Verma"}`))
	require.NoError(t, CreateTreatment(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUpdateTreatmentPartial(t *testing.T) {
	db := newTenantDB(t)
	require.NoError(t, db.Create(&model.Treatment{
		Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Time: "08:00",
		IPDNo: ipdRef(7), ClinicalNote: "Stable", Advice: "Rest",
	}).Error)

	c, rec := newTenantContext(t, db, http.MethodPatch, "/treatments/1",
		jsonBody(`{"clinicalNote":"Improving"}`))
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, UpdateTreatment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var stored model.Treatment
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, "Improving", stored.ClinicalNote)
	assert.Equal(t, "Rest", stored.Advice, "untouched fields keep their values")
}
