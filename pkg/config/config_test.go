package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("clinic-service")
	require.NoError(t, err)

	assert.Equal(t, "clinic-service", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.RegistryDB.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, 30*time.Minute, cfg.TenantPool.IdleEvictAfter)
	assert.Equal(t, 5*time.Second, cfg.TenantPool.DialTimeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REGISTRY_DB_HOST", "registry.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("TENANT_POOL_IDLE_EVICT_AFTER", "15m")
	t.Setenv("TENANT_DB_LOG_LEVEL", "silent")

	cfg, err := Load("clinic-service")
	require.NoError(t, err)

	assert.Equal(t, "registry.internal", cfg.RegistryDB.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 72, cfg.JWT.ExpirationHours)
	assert.Equal(t, 15*time.Minute, cfg.TenantPool.IdleEvictAfter)
	assert.Equal(t, gormlogger.Silent, cfg.TenantPool.LogLevel)
}

func TestRegistryDSN(t *testing.T) {
	c := RegistryDBConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "password", DBName: "clinic", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=password dbname=clinic sslmode=disable",
		c.GetDSN())
}
