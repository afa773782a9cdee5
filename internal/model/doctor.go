package model

// Doctor represents a doctor registration row in a tenant's database
type Doctor struct {
	ID      uint   `json:"DrOID" gorm:"column:DrOID;primaryKey"`
	Name    string `json:"DrName" gorm:"column:DrName;type:varchar(100)"`
	Contact string `json:"Contact" gorm:"column:Contact;type:varchar(50)"`
	Degree  string `json:"Degree" gorm:"column:Degree;type:varchar(100)"`
}

// TableName returns the legacy doctor registration table name
func (Doctor) TableName() string {
	return "drreg"
}
