package model

// CurrentIPD represents a currently admitted in-patient row in a tenant's
// database
type CurrentIPD struct {
	ID        uint   `json:"CIPDOID" gorm:"column:CIPDOID;primaryKey"`
	PatientID *int   `json:"POID" gorm:"column:POID"`
	IPDNo     string `json:"IPDNO" gorm:"column:IPDNO;type:varchar(50)"`
	Name      string `json:"Name" gorm:"column:Name;type:varchar(100)"`
	Room      string `json:"Room" gorm:"column:Room;type:varchar(50)"`
}

// TableName returns the legacy current IPD table name
func (CurrentIPD) TableName() string {
	return "currentipd"
}
