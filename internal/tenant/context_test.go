package tenant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveTenant)

	b := &Binding{Tenant: testTenant(1, "clinic_one")}
	ctx := With(context.Background(), b)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestBindingEcho(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := FromEcho(c)
	assert.ErrorIs(t, err, ErrNoActiveTenant)

	b := &Binding{Tenant: testTenant(2, "clinic_two")}
	c.Set(EchoKey, b)

	got, err := FromEcho(c)
	require.NoError(t, err)
	assert.Same(t, b, got)
}
