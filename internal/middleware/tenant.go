package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"clinic-service/internal/tenant"
	"clinic-service/pkg/logger"
	"clinic-service/prometheus"
)

// TenantMiddleware is the per-request tenant pipeline: extract the bearer
// token, resolve it to a tenant, bind that tenant's database connection and
// expose the binding through the request context. Every failure
// short-circuits with the stage's status; nothing downstream runs without a
// bound tenant.
func TenantMiddleware(resolver *tenant.Resolver, router *tenant.Router) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			token := bearerToken(c)

			// Carry the request logger into the resolver and router so
			// registry lookups and dials log under this request's id.
			ctx := logger.WithContext(c.Request().Context(), log)

			t, err := resolver.Resolve(ctx, token)
			if err != nil {
				return resolveError(c, log, err)
			}
			prometheus.RecordTenantResolve("ok")

			db, err := router.Bind(ctx, t)
			if err != nil {
				log.Error("Failed to bind tenant database",
					zap.Uint("tenant_id", t.ID),
					zap.String("db_name", t.DBName),
					zap.Error(err))
				prometheus.RecordAuthError("tenant_db_unreachable")
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tenant database unavailable"})
			}

			binding := &tenant.Binding{Tenant: t, DB: db}

			log = log.With(
				zap.Uint("tenant_id", t.ID),
				zap.String("db_name", t.DBName),
			)

			// The binding rides in the request context, never in shared
			// state: concurrent requests for other tenants see their own.
			req := c.Request()
			ctx = tenant.With(logger.WithContext(req.Context(), log), binding)
			c.SetRequest(req.WithContext(ctx))
			c.Set(tenant.EchoKey, binding)
			c.Set("logger", log)

			return next(c)
		}
	}
}

// bearerToken pulls the token out of the Authorization header, tolerating a
// missing scheme prefix the way older clients send it.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[0:7], "bearer ") {
		return header[7:]
	}
	return header
}

func resolveError(c echo.Context, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, tenant.ErrTokenMissing):
		log.Warn("Missing authorization token")
		prometheus.RecordTenantResolve("missing")
		prometheus.RecordAuthError("token_missing")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authorization token missing"})

	case errors.Is(err, tenant.ErrTokenMalformed):
		log.Warn("Invalid authorization token", zap.Error(err))
		prometheus.RecordTenantResolve("malformed")
		prometheus.RecordAuthError("token_malformed")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})

	case errors.Is(err, tenant.ErrInvalidPayload):
		log.Warn("Token names no tenant")
		prometheus.RecordTenantResolve("invalid_payload")
		prometheus.RecordAuthError("token_invalid_payload")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})

	case errors.Is(err, tenant.ErrTenantNotFound):
		log.Warn("Tenant not found")
		prometheus.RecordTenantResolve("not_found")
		prometheus.RecordAuthError("tenant_not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})

	default:
		log.Error("Tenant resolution failed", zap.Error(err))
		prometheus.RecordTenantResolve("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "tenant resolution failed"})
	}
}
