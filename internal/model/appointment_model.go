package model

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	DoctorId        string    `gorm:"type:varchar(50);not null"`
	DoctorName      string    `gorm:"type:varchar(255);not null"`
	DoctorSpecialty string    `gorm:"type:varchar(255);not null"`
	Slot            string    `gorm:"type:varchar(100);not null"`
	Symptoms        string    `gorm:"type:text;not null"`
	Notes           string    `gorm:"type:text;not null;default:''"`
	Status          string    `gorm:"type:varchar(20);not null;default:'scheduled'"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

func (Appointment) TableName() string {
	return "appointments"
}
