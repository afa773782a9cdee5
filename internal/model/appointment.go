package model

import "time"

// Appointment represents an appointment row in a tenant's database
type Appointment struct {
	ID         uint      `json:"id" gorm:"column:id;primaryKey"`
	Date       time.Time `json:"Date" gorm:"column:Date"`
	PatientID  string    `json:"POID" gorm:"column:POID;type:varchar(50)"`
	Name       string    `json:"Name" gorm:"column:Name;type:varchar(50)"`
	Contact    string    `json:"Contact" gorm:"column:Contact;type:varchar(50)"`
	DoctorID   string    `json:"DROID" gorm:"column:DROID;type:varchar(50)"`
	DoctorName string    `json:"DrName" gorm:"column:DrName;type:varchar(50)"`
}

// TableName returns the legacy appointment table name
func (Appointment) TableName() string {
	return "appoiment"
}
