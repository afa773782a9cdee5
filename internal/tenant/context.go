package tenant

import (
	"context"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Binding ties a resolved tenant to its live database handle for the
// duration of one request. Bindings travel in the request context; there is
// no process-wide "current tenant" slot, so concurrent requests for
// different tenants cannot observe each other's binding.
type Binding struct {
	Tenant *Tenant
	DB     *gorm.DB
}

type contextKey string

const bindingKey contextKey = "tenant_binding"

// EchoKey is the echo context key the middleware stores the binding under
const EchoKey = "tenant_binding"

// With returns a context carrying the tenant binding
func With(ctx context.Context, b *Binding) context.Context {
	return context.WithValue(ctx, bindingKey, b)
}

// FromContext retrieves the tenant binding from the context
func FromContext(ctx context.Context) (*Binding, error) {
	b, ok := ctx.Value(bindingKey).(*Binding)
	if !ok || b == nil {
		return nil, ErrNoActiveTenant
	}
	return b, nil
}

// FromEcho retrieves the tenant binding from the Echo context
func FromEcho(c echo.Context) (*Binding, error) {
	b, ok := c.Get(EchoKey).(*Binding)
	if !ok || b == nil {
		return nil, ErrNoActiveTenant
	}
	return b, nil
}
