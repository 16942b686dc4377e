package contract

import (
	"context"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	// UpdateStatus changes the status of the appointment owned by userId.
	// It reports false when no such appointment exists.
	UpdateStatus(ctx context.Context, id, userId uuid.UUID, status entity.AppointmentStatus) (bool, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Appointment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Appointment, error)
}
