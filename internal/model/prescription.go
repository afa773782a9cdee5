package model

import "time"

// Prescription represents a prescription row in a tenant's database
type Prescription struct {
	ID             uint       `json:"prescriptionOID" gorm:"column:prescriptionOID;primaryKey"`
	PrescriptionNo int        `json:"PrescriptionNo" gorm:"column:PrescriptionNo"`
	Date           time.Time  `json:"Date" gorm:"column:Date"`
	PatientID      int        `json:"POID" gorm:"column:POID"`
	History        string     `json:"History" gorm:"column:History;type:varchar(200)"`
	ItemName       string     `json:"ItemName" gorm:"column:ItemName;type:varchar(200)"`
	ContentName    string     `json:"ContentName" gorm:"column:ContentName;type:varchar(200)"`
	Total          string     `json:"Total" gorm:"column:Total;type:varchar(50)"`
	Notes          string     `json:"Notes" gorm:"column:Notes;type:varchar(200)"`
	Advice         string     `json:"Advice" gorm:"column:Advice;type:varchar(600)"`
	ApDate         *time.Time `json:"ApDate" gorm:"column:ApDate"`
	CC             string     `json:"cc" gorm:"column:cc;type:varchar(200)"`
	CF             string     `json:"cf" gorm:"column:cf;type:varchar(200)"`
	GE             string     `json:"ge" gorm:"column:ge;type:varchar(200)"`
	Inv            string     `json:"inv" gorm:"column:inv;type:varchar(200)"`
	Name           string     `json:"Name" gorm:"column:Name;type:varchar(200)"`
}

// TableName returns the legacy prescription table name
func (Prescription) TableName() string {
	return "prescription"
}
