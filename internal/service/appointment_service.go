package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"healthcare-chatbot-be/internal/constant"
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/repository/contract"
	"healthcare-chatbot-be/internal/repository/scope"
	"healthcare-chatbot-be/internal/repository/specification"
	"healthcare-chatbot-be/internal/repository/unitofwork"
	"healthcare-chatbot-be/pkg/events"

	"github.com/google/uuid"
)

const (
	AppointmentEventBooked    = "booked"
	AppointmentEventCancelled = "cancelled"
)

type IAppointmentService interface {
	Book(ctx context.Context, user *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, user *entity.User, appointmentId uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	doctors          contract.DoctorRepository
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewAppointmentService(
	uowFactory unitofwork.RepositoryFactory,
	doctors contract.DoctorRepository,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAppointmentService {
	return &appointmentService{
		uowFactory:       uowFactory,
		doctors:          doctors,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *appointmentService) Book(ctx context.Context, user *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctor, ok := s.doctors.FindById(req.DoctorId)
	if !ok {
		return nil, ErrDoctorNotFound
	}
	if !doctor.HasSlot(req.Slot) {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		Id:              uuid.New(),
		UserId:          user.Id,
		DoctorId:        doctor.Id,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		Slot:            req.Slot,
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
		Status:          entity.AppointmentStatusScheduled,
		CreatedAt:       time.Now().UTC(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	res := toAppointmentResponse(appointment)
	s.notify(ctx, user, AppointmentEventBooked, res)
	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeAppointmentBooked, map[string]interface{}{
		"appointment_id": appointment.Id.String(),
		"user_id":        user.Id.String(),
		"doctor_id":      doctor.Id,
		"slot":           appointment.Slot,
	})

	return &res, nil
}

func (s *appointmentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Scoped(scope.OrderByCreatedDesc),
		specification.Pagination{Limit: constant.AppointmentListCap},
	)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	res := make([]*dto.AppointmentResponse, len(appointments))
	for i, a := range appointments {
		r := toAppointmentResponse(a)
		res[i] = &r
	}
	return res, nil
}

func (s *appointmentService) Cancel(ctx context.Context, user *entity.User, appointmentId uuid.UUID) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	found, err := uow.AppointmentRepository().UpdateStatus(ctx, appointmentId, user.Id, entity.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	if !found {
		return nil, ErrAppointmentNotFound
	}

	appointment, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByID{ID: appointmentId},
		specification.UserOwnedBy{UserID: user.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("reload appointment: %w", err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res := toAppointmentResponse(appointment)
	s.notify(ctx, user, AppointmentEventCancelled, res)
	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeAppointmentCancelled, map[string]interface{}{
		"appointment_id": appointment.Id.String(),
		"user_id":        user.Id.String(),
	})

	return &res, nil
}

// notify hands the appointment to the in-process topic; delivery problems never fail the request.
func (s *appointmentService) notify(ctx context.Context, user *entity.User, event string, appointment dto.AppointmentResponse) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.AppointmentMessage{
		Event:       event,
		UserEmail:   user.Email,
		UserName:    user.FullName,
		Appointment: appointment,
	})
	if err != nil {
		s.logger.Error("APPOINTMENT", "Failed to encode appointment message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Warn("APPOINTMENT", "Failed to publish appointment message", map[string]interface{}{
			"appointment_id": appointment.Id.String(),
			"error":          err.Error(),
		})
	}
}

func toAppointmentResponse(a *entity.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		Id:              a.Id,
		UserId:          a.UserId,
		DoctorId:        a.DoctorId,
		DoctorName:      a.DoctorName,
		DoctorSpecialty: a.DoctorSpecialty,
		Slot:            a.Slot,
		Symptoms:        a.Symptoms,
		Notes:           a.Notes,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}
