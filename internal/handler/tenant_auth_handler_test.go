package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"clinic-service/internal/tenant"
	"clinic-service/pkg/config"
	"clinic-service/pkg/jwtutil"
)

func newLoginHandler(t *testing.T, dial tenant.DialFunc) (echo.HandlerFunc, *jwtutil.JWTUtil) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tenant.Tenant{}))

	router := tenant.NewRouterWithDialer(&config.TenantPoolConfig{
		IdleEvictAfter: time.Hour,
		DialTimeout:    time.Second,
		LogLevel:       gormlogger.Silent,
	}, dial)
	t.Cleanup(router.Close)

	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
	return TenantLogin(tenant.NewRegistry(db), router, jwt), jwt
}

func postLogin(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/tenant/login", jsonBody(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func reachableDialer(ctx context.Context, creds tenant.Credentials) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

const validCreds = `{"db_host":"localhost","db_port":"5432","db_name":"clinic_one","db_username":"clinic","db_password":"secret"}`

func TestTenantLogin(t *testing.T) {
	h, jwt := newLoginHandler(t, reachableDialer)

	rec := postLogin(t, h, validCreds)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string        `json:"token"`
		Tenant tenant.Tenant `json:"tenant"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.Tenant.ID)

	// The minted token names the stored tenant.
	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Tenant.ID, claims.TenantID)
	assert.Equal(t, "clinic_one", claims.DBName)

	// Logging in again with the same credentials finds the same tenant.
	rec = postLogin(t, h, validCreds)
	require.Equal(t, http.StatusOK, rec.Code)
	var again struct {
		Tenant tenant.Tenant `json:"tenant"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, resp.Tenant.ID, again.Tenant.ID)
}

func TestTenantLoginIncompleteCredentials(t *testing.T) {
	h, _ := newLoginHandler(t, reachableDialer)

	rec := postLogin(t, h, `{"db_host":"localhost","db_port":"5432"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTenantLoginUnreachableDatabase(t *testing.T) {
	h, _ := newLoginHandler(t, func(ctx context.Context, creds tenant.Credentials) (*gorm.DB, error) {
		return nil, errors.New("password authentication failed")
	})

	rec := postLogin(t, h, validCreds)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
