package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-service/internal/tenant"
	"clinic-service/pkg/jwtutil"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// TenantLogin returns the onboarding/login handler. A clinic presents its
// database credentials; the service probes that database, stores (or finds)
// the tenant record and mints the signed token every later request carries.
func TenantLogin(registry *tenant.Registry, router *tenant.Router, jwt *jwtutil.JWTUtil) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)
		prometheus.TenantLoginCounter.Inc()

		var creds tenant.Credentials
		if err := c.Bind(&creds); err != nil {
			log.Error("Failed to parse tenant login request", zap.Error(err))
			prometheus.RecordAuthError("invalid_request")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if !creds.Complete() {
			log.Warn("Incomplete tenant credentials",
				zap.String("db_host", creds.DBHost),
				zap.String("db_name", creds.DBName))
			prometheus.RecordAuthError("incomplete_credentials")
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"message": "Validation failed",
				"error":   "db_host, db_port, db_name, db_username and db_password are required",
			})
		}

		// Prove the credentials describe a reachable database before the
		// registry learns about them.
		if err := router.Probe(c.Request().Context(), creds); err != nil {
			log.Warn("Tenant database probe failed",
				zap.String("db_host", creds.DBHost),
				zap.String("db_name", creds.DBName),
				zap.Error(err))
			prometheus.RecordAuthError("credential_probe_failed")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid database credentials"})
		}

		t, err := registry.FindOrCreate(c.Request().Context(), creds)
		if err != nil {
			log.Error("Failed to register tenant", zap.Error(err))
			prometheus.RecordAuthError("registry_failure")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tenant registration failed"})
		}

		token, err := jwt.GenerateTenantToken(t.ID, t.DBName)
		if err != nil {
			log.Error("Failed to generate tenant token", zap.Uint("tenant_id", t.ID), zap.Error(err))
			prometheus.RecordAuthError("token_generation_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
		}

		log.Info("Tenant logged in",
			zap.Uint("tenant_id", t.ID),
			zap.String("db_name", t.DBName))

		return c.JSON(http.StatusOK, echo.Map{
			"token":   token,
			"tenant":  t,
			"message": "Login successful",
		})
	}
}
