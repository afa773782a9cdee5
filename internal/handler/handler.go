package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"clinic-service/internal/tenant"
)

// tenantDB returns the tenant database handle bound for this request. The
// tenant middleware guarantees a binding on every route below it; a missing
// one means the handler was mounted outside the tenant group.
func tenantDB(c echo.Context) (*gorm.DB, error) {
	b, err := tenant.FromEcho(c)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "tenant context required")
	}
	return b.DB.WithContext(c.Request().Context()), nil
}

// parsePagination reads page/limit query parameters with the service-wide
// defaults
func parsePagination(c echo.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return page, limit, (page - 1) * limit
}

// paginationMap builds the standard pagination envelope
func paginationMap(page, limit int, total int64) echo.Map {
	return echo.Map{
		"current_page": page,
		"limit":        limit,
		"total":        total,
		"total_pages":  (int(total) + limit - 1) / limit,
	}
}
