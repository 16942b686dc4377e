package service

import "errors"

var (
	ErrDuplicateEmail      = errors.New("Email already registered")
	ErrInvalidCredentials  = errors.New("Invalid email or password")
	ErrTokenExpired        = errors.New("Token expired")
	ErrTokenInvalid        = errors.New("Invalid token")
	ErrUserNotFound        = errors.New("User not found")
	ErrSessionNotFound     = errors.New("Session not found")
	ErrDoctorNotFound      = errors.New("Doctor not found")
	ErrSlotUnavailable     = errors.New("Selected slot is not available")
	ErrAppointmentNotFound = errors.New("Appointment not found")
	ErrTranscriptionFailed = errors.New("Transcription failed")
	ErrSynthesisFailed     = errors.New("TTS failed")
)
