package model

import "time"

// Patient represents a registered patient row in a tenant's database. The
// tenant schemas predate this service, so table and column names follow the
// legacy layout.
type Patient struct {
	ID        uint      `json:"POID" gorm:"column:POID;primaryKey"`
	RegNo     string    `json:"RegNo" gorm:"column:RegNo;type:varchar(50)"`
	Name      string    `json:"Pname" gorm:"column:Pname;type:varchar(50)"`
	Address   string    `json:"Paddress" gorm:"column:Paddress;type:varchar(200)"`
	Contact   string    `json:"Pcontact" gorm:"column:Pcontact;type:varchar(50)"`
	Gender    string    `json:"Pgender" gorm:"column:Pgender;type:varchar(50)"`
	Age       string    `json:"Page" gorm:"column:Page;type:varchar(50)"`
	DoctorID  *int      `json:"DrOID" gorm:"column:DrOID"`
	Title     string    `json:"Tital" gorm:"column:Tital;type:varchar(50)"`
	Photo     string    `json:"photo" gorm:"column:photo"`
	MemberID  *int      `json:"MemberID" gorm:"column:MemberID"`
	AadharNo  string    `json:"AdharNo" gorm:"column:AdharNo;type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the legacy patient registration table name
func (Patient) TableName() string {
	return "pateintreg"
}
