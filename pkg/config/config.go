package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// RegistryDBConfig holds the connection settings for the central tenant
// registry database.
type RegistryDBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string for the registry database
func (c *RegistryDBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// TenantPoolConfig holds the per-tenant connection pool settings
type TenantPoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	IdleEvictAfter  time.Duration
	DialTimeout     time.Duration
	SSLMode         string
	LogLevel        logger.LogLevel
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds tenant token configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	RegistryDB  RegistryDBConfig
	TenantPool  TenantPoolConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: serviceName,
		RegistryDB: RegistryDBConfig{
			Host:            getEnv("REGISTRY_DB_HOST", "localhost"),
			Port:            getEnv("REGISTRY_DB_PORT", "5432"),
			User:            getEnv("REGISTRY_DB_USER", "postgres"),
			Password:        getEnv("REGISTRY_DB_PASSWORD", "password"),
			DBName:          getEnv("REGISTRY_DB_NAME", serviceName),
			SSLMode:         getEnv("REGISTRY_DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("REGISTRY_DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("REGISTRY_DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("REGISTRY_DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("REGISTRY_DB_LOG_LEVEL", logger.Warn),
		},
		TenantPool: TenantPoolConfig{
			MaxIdleConns:    getEnvAsInt("TENANT_DB_MAX_IDLE_CONNS", 5),
			MaxOpenConns:    getEnvAsInt("TENANT_DB_MAX_OPEN_CONNS", 20),
			ConnMaxLifetime: getEnvAsDuration("TENANT_DB_CONN_MAX_LIFETIME", 1*time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("TENANT_DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
			IdleEvictAfter:  getEnvAsDuration("TENANT_POOL_IDLE_EVICT_AFTER", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("TENANT_DB_DIAL_TIMEOUT", 5*time.Second),
			SSLMode:         getEnv("TENANT_DB_SSL_MODE", "disable"),
			LogLevel:        getEnvAsLogLevel("TENANT_DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", serviceName),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("registry_db_host", c.RegistryDB.Host),
		zap.String("registry_db_port", c.RegistryDB.Port),
		zap.String("registry_db_name", c.RegistryDB.DBName),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
