package service

import (
	"context"
	"encoding/json"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/pkg/logger"
	"healthcare-chatbot-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber   message.Subscriber
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

// NewConsumerService builds the appointment notification worker. emailService may be nil,
// in which case notifications are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:   subscriber,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.AppointmentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("NOTIFY", "Failed to unmarshal appointment message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // a malformed payload will never succeed
		return
	}

	details := map[string]interface{}{
		"event":          payload.Event,
		"appointment_id": payload.Appointment.Id.String(),
		"user_email":     payload.UserEmail,
	}

	if cs.emailService == nil {
		cs.logger.Info("NOTIFY", "Appointment notification (mail disabled)", details)
		msg.Ack()
		return
	}

	notice := mailer.AppointmentNotice{
		ToEmail:         payload.UserEmail,
		PatientName:     payload.UserName,
		DoctorName:      payload.Appointment.DoctorName,
		DoctorSpecialty: payload.Appointment.DoctorSpecialty,
		Slot:            payload.Appointment.Slot,
		Symptoms:        payload.Appointment.Symptoms,
	}

	var err error
	switch payload.Event {
	case AppointmentEventBooked:
		err = cs.emailService.SendAppointmentConfirmation(notice)
	case AppointmentEventCancelled:
		err = cs.emailService.SendAppointmentCancellation(notice)
	default:
		cs.logger.Warn("NOTIFY", "Unknown appointment event", details)
		msg.Ack()
		return
	}

	if err != nil {
		details["error"] = err.Error()
		cs.logger.Error("NOTIFY", "Failed to send appointment email", details)
	} else {
		cs.logger.Info("NOTIFY", "Appointment email sent", details)
	}
	// No retry loop: mail failures are logged and dropped.
	msg.Ack()
}
