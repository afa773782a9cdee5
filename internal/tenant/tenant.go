package tenant

import (
	"strings"
	"time"
)

// Tenant represents one clinic/hospital customer stored in the registry
// database. The credential fields together describe that customer's own
// database; every request resolves to exactly one of these rows.
type Tenant struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DBHost     string    `json:"db_host" gorm:"column:db_host;type:varchar(255);not null"`
	DBPort     string    `json:"db_port" gorm:"column:db_port;type:varchar(10);not null"`
	DBName     string    `json:"db_name" gorm:"column:db_name;type:varchar(100);not null"`
	DBUsername string    `json:"db_username" gorm:"column:db_username;type:varchar(100);not null"`
	DBPassword string    `json:"-" gorm:"column:db_password;type:varchar(255);not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the registry table name
func (Tenant) TableName() string {
	return "tenants"
}

// Credentials returns the tenant's database credential set
func (t *Tenant) Credentials() Credentials {
	return Credentials{
		DBHost:     t.DBHost,
		DBPort:     t.DBPort,
		DBName:     t.DBName,
		DBUsername: t.DBUsername,
		DBPassword: t.DBPassword,
	}
}

// Credentials is the database credential set presented at onboarding
type Credentials struct {
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUsername string `json:"db_username"`
	DBPassword string `json:"db_password"`
}

// Complete reports whether every credential field is present
func (c Credentials) Complete() bool {
	return c.DBHost != "" && c.DBPort != "" && c.DBName != "" &&
		c.DBUsername != "" && c.DBPassword != ""
}

// Fingerprint identifies a credential set. The router compares fingerprints
// so a re-onboarded tenant gets a fresh connection instead of a stale pooled
// one.
func (c Credentials) Fingerprint() string {
	return strings.Join([]string{c.DBHost, c.DBPort, c.DBName, c.DBUsername, c.DBPassword}, "\x1f")
}
