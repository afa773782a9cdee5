package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"clinic-service/internal/model"
	"clinic-service/internal/tenant"
)

// newTenantDB opens an in-memory database migrated with the tenant schema,
// standing in for one clinic's own database.
func newTenantDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Patient{},
		&model.Doctor{},
		&model.Appointment{},
		&model.Prescription{},
		&model.DrugChart{},
		&model.TPR{},
		&model.Treatment{},
		&model.CurrentIPD{},
		&model.TenantUser{},
	))
	return db
}

// newTenantContext builds an echo context carrying a tenant binding, the way
// the tenant middleware leaves it for handlers.
func newTenantContext(t *testing.T, db *gorm.DB, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	binding := &tenant.Binding{
		Tenant: &tenant.Tenant{ID: 1, DBName: "clinic_test"},
		DB:     db,
	}
	c.Set(tenant.EchoKey, binding)
	c.SetRequest(req.WithContext(tenant.With(req.Context(), binding)))
	return c, rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestTenantDBRequiresBinding(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := tenantDB(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestParsePagination(t *testing.T) {
	e := echo.New()

	cases := []struct {
		query               string
		page, limit, offset int
	}{
		{"", 1, 20, 0},
		{"page=3&limit=10", 3, 10, 20},
		{"page=-1&limit=0", 1, 20, 0},
		{"page=2&limit=500", 2, 20, 20},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		page, limit, offset := parsePagination(c)
		require.Equal(t, tc.page, page, tc.query)
		require.Equal(t, tc.limit, limit, tc.query)
		require.Equal(t, tc.offset, offset, tc.query)
	}
}
