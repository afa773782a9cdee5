package model

import "time"

// Treatment represents a treatment note row in a tenant's database
type Treatment struct {
	ID           uint      `json:"TCOID" gorm:"column:TCOID;primaryKey"`
	Date         time.Time `json:"Date" gorm:"column:Date"`
	Time         string    `json:"Time" gorm:"column:Time;type:varchar(20)"`
	PatientID    *int      `json:"POID" gorm:"column:POID"`
	IPDNo        *int      `json:"IPDNo" gorm:"column:IPDNo"`
	Name         string    `json:"Name" gorm:"column:Name;type:varchar(100)"`
	DoctorName   string    `json:"DrName" gorm:"column:DrName;type:varchar(100)"`
	ClinicalNote string    `json:"ClinicalNote" gorm:"column:ClinicalNote"`
	Advice       string    `json:"Advice" gorm:"column:Advice"`
	RS           string    `json:"Rs" gorm:"column:Rs"`
	CNS          string    `json:"Cns" gorm:"column:Cns"`
	CVS          string    `json:"Cvs" gorm:"column:Cvs"`
}

// TableName returns the legacy treatment note table name
func (Treatment) TableName() string {
	return "Treatment"
}
