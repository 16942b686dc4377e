package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	DoctorId string `json:"doctor_id" validate:"required"`
	Slot     string `json:"slot" validate:"required"`
	Symptoms string `json:"symptoms" validate:"required"`
	Notes    string `json:"notes,omitempty"`
}

type AppointmentResponse struct {
	Id              uuid.UUID `json:"id"`
	UserId          uuid.UUID `json:"user_id"`
	DoctorId        string    `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name"`
	DoctorSpecialty string    `json:"doctor_specialty"`
	Slot            string    `json:"slot"`
	Symptoms        string    `json:"symptoms"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppointmentMessage is the payload carried on the in-process appointment topic.
type AppointmentMessage struct {
	Event       string              `json:"event"`
	UserEmail   string              `json:"user_email"`
	UserName    string              `json:"user_name"`
	Appointment AppointmentResponse `json:"appointment"`
}
