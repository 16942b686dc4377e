package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	DoctorId        string
	DoctorName      string
	DoctorSpecialty string
	Slot            string
	Symptoms        string
	Notes           string
	Status          AppointmentStatus
	CreatedAt       time.Time
}
