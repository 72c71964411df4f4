package model

import "time"

const (
	InstitutionSchool     = "School"
	InstitutionCollege    = "College"
	InstitutionUniversity = "University"
)

type Institution struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"column:institution_name;size:200;not null" json:"name"`
	Type         string    `gorm:"column:institution_type;size:50;not null" json:"type"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Address      string    `json:"address"`
	Phone        string    `gorm:"size:15" json:"phone"`
	CreatedAt    time.Time `gorm:"column:registration_date" json:"registration_date"`
}

func (Institution) TableName() string { return "institutions" }
