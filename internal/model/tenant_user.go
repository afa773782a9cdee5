package model

import "time"

// TenantUser represents a staff user row inside a tenant's own database.
// Accounts here belong to the clinic, not to the control plane.
type TenantUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100)"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Role      string    `json:"role" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the tenant-side users table name
func (TenantUser) TableName() string {
	return "users"
}
