package tenant

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Registry is the durable store of tenant records, backed by the
// control-plane database.
type Registry struct {
	db *gorm.DB
}

// NewRegistry creates a registry over the given control-plane database
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// FindByID looks up a tenant by its identifier
func (r *Registry) FindByID(ctx context.Context, id uint) (*Tenant, error) {
	var t Tenant
	result := r.db.WithContext(ctx).First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("registry lookup failed: %w", result.Error)
	}
	return &t, nil
}

// FindByCredentials looks up a tenant matching an exact credential set
func (r *Registry) FindByCredentials(ctx context.Context, creds Credentials) (*Tenant, error) {
	var t Tenant
	result := r.db.WithContext(ctx).
		Where("db_host = ? AND db_port = ? AND db_name = ? AND db_username = ? AND db_password = ?",
			creds.DBHost, creds.DBPort, creds.DBName, creds.DBUsername, creds.DBPassword).
		First(&t)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("registry lookup failed: %w", result.Error)
	}
	return &t, nil
}

// Create stores a new tenant record for the given credentials
func (r *Registry) Create(ctx context.Context, creds Credentials) (*Tenant, error) {
	t := Tenant{
		DBHost:     creds.DBHost,
		DBPort:     creds.DBPort,
		DBName:     creds.DBName,
		DBUsername: creds.DBUsername,
		DBPassword: creds.DBPassword,
	}
	if result := r.db.WithContext(ctx).Create(&t); result.Error != nil {
		return nil, fmt.Errorf("registry create failed: %w", result.Error)
	}
	return &t, nil
}

// FindOrCreate resolves a credential set to its tenant record, creating one
// on first sight. Onboarding with an identical credential set is idempotent.
func (r *Registry) FindOrCreate(ctx context.Context, creds Credentials) (*Tenant, error) {
	t, err := r.FindByCredentials(ctx, creds)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrTenantNotFound) {
		return nil, err
	}
	return r.Create(ctx, creds)
}
