package model

import "time"

type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    string    `gorm:"size:50;uniqueIndex;not null" json:"student_id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Phone        string    `gorm:"size:15" json:"phone"`
	Dob          string    `gorm:"size:20" json:"dob"`
	CreatedAt    time.Time `gorm:"column:registration_date" json:"registration_date"`
}

func (Student) TableName() string { return "students" }
