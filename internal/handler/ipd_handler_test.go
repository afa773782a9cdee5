package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-service/internal/model"
)

func TestListCurrentIPDTotalOnLaterPages(t *testing.T) {
	db := newTenantDB(t)
	for i := 1; i <= 25; i++ {
		require.NoError(t, db.Create(&model.CurrentIPD{
			IPDNo: fmt.Sprintf("IPD-%02d", i),
			Name:  fmt.Sprintf("Patient %02d", i),
			Room:  "GW-1",
		}).Error)
	}

	c, rec := newTenantContext(t, db, http.MethodGet, "/current-ipd?page=2&limit=20", nil)
	require.NoError(t, ListCurrentIPD(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CurrentIPD []model.CurrentIPD `json:"current_ipd"`
		Pagination struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.CurrentIPD, 5)
	assert.Equal(t, int64(25), resp.Pagination.Total, "total must count all matches, not the page")
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}

func TestListCurrentIPDSearch(t *testing.T) {
	db := newTenantDB(t)
	require.NoError(t, db.Create(&model.CurrentIPD{IPDNo: "IPD-01", Name: "Asha Verma", Room: "GW-1"}).Error)
	require.NoError(t, db.Create(&model.CurrentIPD{IPDNo: "IPD-02", Name: "Ravi Kumar", Room: "ICU-2"}).Error)

	c, rec := newTenantContext(t, db, http.MethodGet, "/current-ipd?search=ICU", nil)
	require.NoError(t, ListCurrentIPD(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		CurrentIPD []model.CurrentIPD `json:"current_ipd"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.CurrentIPD, 1)
	assert.Equal(t, "Ravi Kumar", resp.CurrentIPD[0].Name)
}

func TestDeleteCurrentIPD(t *testing.T) {
	db := newTenantDB(t)
	require.NoError(t, db.Create(&model.CurrentIPD{IPDNo: "IPD-01", Name: "Asha Verma"}).Error)

	c, rec := newTenantContext(t, db, http.MethodDelete, "/current-ipd/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, DeleteCurrentIPD(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTenantContext(t, db, http.MethodDelete, "/current-ipd/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, DeleteCurrentIPD(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
