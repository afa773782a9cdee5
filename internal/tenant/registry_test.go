package tenant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFindByID(t *testing.T) {
	registry := NewRegistry(newRegistryDB(t))

	created, err := registry.Create(context.Background(), Credentials{
		DBHost: "localhost", DBPort: "5432", DBName: "clinic_one",
		DBUsername: "clinic", DBPassword: "secret",
	})
	require.NoError(t, err)

	found, err := registry.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "clinic_one", found.DBName)

	_, err = registry.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestRegistryFindOrCreate(t *testing.T) {
	registry := NewRegistry(newRegistryDB(t))

	creds := Credentials{
		DBHost: "db.clinic.example", DBPort: "5432", DBName: "clinic_two",
		DBUsername: "clinic", DBPassword: "secret",
	}

	first, err := registry.FindOrCreate(context.Background(), creds)
	require.NoError(t, err)

	// Same credential set resolves to the same tenant.
	second, err := registry.FindOrCreate(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Any changed field is a different tenant.
	creds.DBPassword = "rotated"
	third, err := registry.FindOrCreate(context.Background(), creds)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestCredentials(t *testing.T) {
	creds := Credentials{
		DBHost: "localhost", DBPort: "5432", DBName: "clinic_one",
		DBUsername: "clinic", DBPassword: "secret",
	}
	assert.True(t, creds.Complete())

	incomplete := creds
	incomplete.DBPassword = ""
	assert.False(t, incomplete.Complete())

	rotated := creds
	rotated.DBPassword = "rotated"
	assert.NotEqual(t, creds.Fingerprint(), rotated.Fingerprint())
	assert.Equal(t, creds.Fingerprint(), creds.Fingerprint())
}
