package tenant

import "errors"

// Errors surfaced by the tenant resolution and binding pipeline. The
// middleware maps these onto HTTP statuses; nothing in this package ever
// falls back to a default tenant when resolution is ambiguous.
var (
	// ErrTokenMissing indicates no tenant token was presented.
	ErrTokenMissing = errors.New("tenant token missing")

	// ErrTokenMalformed indicates the token could not be parsed or its
	// signature did not verify.
	ErrTokenMalformed = errors.New("tenant token malformed")

	// ErrInvalidPayload indicates a valid token that names no tenant.
	ErrInvalidPayload = errors.New("tenant token has no tenant id")

	// ErrTenantNotFound indicates the token names a tenant the registry
	// does not know.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrUnreachable indicates the tenant's database could not be reached
	// or rejected the stored credentials.
	ErrUnreachable = errors.New("tenant database unreachable")

	// ErrNoActiveTenant indicates a handler asked for the current tenant
	// binding outside of a tenant-scoped request.
	ErrNoActiveTenant = errors.New("no active tenant in context")
)
