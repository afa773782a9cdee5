package model

import "time"

// DrugChart represents a drug administration row in a tenant's database
type DrugChart struct {
	ID        uint      `json:"DurgOID" gorm:"column:DurgOID;primaryKey"`
	PatientID *int      `json:"POID" gorm:"column:POID"`
	Name      string    `json:"Name" gorm:"column:Name;type:varchar(200)"`
	IPDNo     string    `json:"IPDNo" gorm:"column:IPDNo;type:varchar(200)"`
	Date      time.Time `json:"Date" gorm:"column:Date"`
	Medicine  string    `json:"Medicine" gorm:"column:Medicine;type:varchar(200)"`
	Dosage    string    `json:"Dosage" gorm:"column:Dosage;type:varchar(200)"`
}

// TableName returns the legacy drug chart table name
func (DrugChart) TableName() string {
	return "DrugChart"
}
