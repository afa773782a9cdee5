package tenant

import (
	"context"
	"fmt"

	"clinic-service/pkg/jwtutil"
)

// Resolver turns an opaque bearer token into a tenant record. It verifies
// the token signature, extracts the tenant identifier and reads the
// registry; it has no other side effects.
type Resolver struct {
	jwt      *jwtutil.JWTUtil
	registry *Registry
}

// NewResolver creates a resolver over the given token verifier and registry
func NewResolver(jwt *jwtutil.JWTUtil, registry *Registry) *Resolver {
	return &Resolver{jwt: jwt, registry: registry}
}

// Resolve decodes the token and fetches the corresponding tenant record.
// Failure modes, in stage order: ErrTokenMissing, ErrTokenMalformed,
// ErrInvalidPayload, ErrTenantNotFound.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Tenant, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	claims, err := r.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	if claims.TenantID == 0 {
		return nil, ErrInvalidPayload
	}

	return r.registry.FindByID(ctx, claims.TenantID)
}
