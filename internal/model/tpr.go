package model

import "time"

// TPR represents a temperature/pulse/respiration (vitals) row in a tenant's
// database
type TPR struct {
	ID          uint      `json:"TPROID" gorm:"column:TPROID;primaryKey"`
	Date        time.Time `json:"Date" gorm:"column:Date"`
	Time        string    `json:"Time" gorm:"column:Time;type:varchar(20)"`
	PatientID   *int      `json:"POID" gorm:"column:POID"`
	Name        string    `json:"Name" gorm:"column:Name;type:varchar(100)"`
	IPDNo       string    `json:"IPDNo" gorm:"column:IPDNo;type:varchar(50)"`
	Temperature string    `json:"T" gorm:"column:T;type:varchar(10)"`
	Pulse       string    `json:"P" gorm:"column:P;type:varchar(10)"`
	Respiration string    `json:"R" gorm:"column:R;type:varchar(10)"`
	BP          string    `json:"bp" gorm:"column:bp;type:varchar(20)"`
	Intake      string    `json:"it" gorm:"column:it;type:varchar(100)"`
	Output      string    `json:"op" gorm:"column:op;type:varchar(100)"`
	Complaint   string    `json:"c" gorm:"column:c;type:varchar(100)"`
	Action      string    `json:"a" gorm:"column:a;type:varchar(100)"`
}

// TableName returns the legacy vitals table name
func (TPR) TableName() string {
	return "TPR"
}
