package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/repository/memory"
	"healthcare-chatbot-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAppointmentFixture() (IAppointmentService, *fakeUoW, *recordingPublisher, *recordingEvents) {
	uow := newFakeUoW()
	pub := &recordingPublisher{}
	bus := &recordingEvents{}
	doctors := memory.NewDoctorRepository(memory.DefaultDoctors())
	return NewAppointmentService(fakeFactory{uow: uow}, doctors, pub, bus, logger.NewNop()), uow, pub, bus
}

func TestAppointmentService_Book(t *testing.T) {
	svc, uow, pub, bus := newAppointmentFixture()
	ctx := context.Background()
	user := patient()

	var created *entity.Appointment
	uow.appointments.On("Create", ctx, mock.AnythingOfType("*entity.Appointment")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*entity.Appointment) }).
		Return(nil).Once()

	res, err := svc.Book(ctx, user, &dto.CreateAppointmentRequest{
		DoctorId: "doc-1",
		Slot:     "Tomorrow 9:00 AM",
		Symptoms: "persistent cough",
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Equal(t, user.Id, created.UserId)
	assert.Equal(t, "Dr. Sarah Chen", res.DoctorName)
	assert.Equal(t, "General Practitioner", res.DoctorSpecialty)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), res.Status)
	assert.Equal(t, "", res.Notes)

	require.Len(t, pub.payloads, 1)
	var msg dto.AppointmentMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, AppointmentEventBooked, msg.Event)
	assert.Equal(t, user.Email, msg.UserEmail)
	assert.Equal(t, res.Id, msg.Appointment.Id)

	assert.Equal(t, []string{events.TypeAppointmentBooked}, bus.types())
}

func TestAppointmentService_Book_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateAppointmentRequest
		wantErr error
	}{
		{
			name:    "unknown doctor",
			req:     dto.CreateAppointmentRequest{DoctorId: "doc-99", Slot: "Tomorrow 9:00 AM", Symptoms: "cough"},
			wantErr: ErrDoctorNotFound,
		},
		{
			name:    "slot offered by another doctor",
			req:     dto.CreateAppointmentRequest{DoctorId: "doc-1", Slot: "Today 4:00 PM", Symptoms: "cough"},
			wantErr: ErrSlotUnavailable,
		},
		{
			name:    "slot differs in case",
			req:     dto.CreateAppointmentRequest{DoctorId: "doc-1", Slot: "tomorrow 9:00 am", Symptoms: "cough"},
			wantErr: ErrSlotUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, uow, pub, bus := newAppointmentFixture()
			_, err := svc.Book(context.Background(), patient(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			uow.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, pub.payloads)
			assert.Empty(t, bus.types())
		})
	}
}

func TestAppointmentService_Book_NotificationFailureIsNotFatal(t *testing.T) {
	svc, uow, pub, _ := newAppointmentFixture()
	pub.err = errors.New("topic closed")
	ctx := context.Background()

	uow.appointments.On("Create", ctx, mock.Anything).Return(nil).Once()

	res, err := svc.Book(ctx, patient(), &dto.CreateAppointmentRequest{DoctorId: "doc-2", Slot: "Today 4:00 PM", Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, "doc-2", res.DoctorId)
}

func TestAppointmentService_List(t *testing.T) {
	svc, uow, _, _ := newAppointmentFixture()
	ctx := context.Background()
	user := patient()

	uow.appointments.On("FindAll", ctx, mock.Anything).Return([]*entity.Appointment{
		{Id: uuid.New(), UserId: user.Id, DoctorId: "doc-3", Status: entity.AppointmentStatusCancelled},
		{Id: uuid.New(), UserId: user.Id, DoctorId: "doc-1", Status: entity.AppointmentStatusScheduled},
	}, nil).Once()

	res, err := svc.List(ctx, user.Id)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "cancelled", res[0].Status)
	assert.Equal(t, "scheduled", res[1].Status)
}

func TestAppointmentService_Cancel(t *testing.T) {
	t.Run("owned appointment", func(t *testing.T) {
		svc, uow, pub, bus := newAppointmentFixture()
		ctx := context.Background()
		user := patient()
		id := uuid.New()

		uow.appointments.On("UpdateStatus", ctx, id, user.Id, entity.AppointmentStatusCancelled).Return(true, nil).Once()
		uow.appointments.On("FindOne", ctx, mock.Anything).Return(&entity.Appointment{
			Id: id, UserId: user.Id, DoctorId: "doc-1", Status: entity.AppointmentStatusCancelled,
		}, nil).Once()

		res, err := svc.Cancel(ctx, user, id)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", res.Status)
		assert.Equal(t, 1, uow.committed)

		require.Len(t, pub.payloads, 1)
		var msg dto.AppointmentMessage
		require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
		assert.Equal(t, AppointmentEventCancelled, msg.Event)
		assert.Equal(t, []string{events.TypeAppointmentCancelled}, bus.types())
	})

	t.Run("unknown or foreign appointment", func(t *testing.T) {
		svc, uow, pub, _ := newAppointmentFixture()
		ctx := context.Background()
		user := patient()
		id := uuid.New()

		uow.appointments.On("UpdateStatus", ctx, id, user.Id, entity.AppointmentStatusCancelled).Return(false, nil).Once()

		_, err := svc.Cancel(ctx, user, id)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
		assert.Zero(t, uow.committed)
		assert.Equal(t, 1, uow.rolledBack)
		assert.Empty(t, pub.payloads)
	})
}
