package mapper

import (
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/model"
)

type AppointmentMapper struct{}

func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

func (m *AppointmentMapper) ToEntity(a *model.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}
	return &entity.Appointment{
		Id:              a.Id,
		UserId:          a.UserId,
		DoctorId:        a.DoctorId,
		DoctorName:      a.DoctorName,
		DoctorSpecialty: a.DoctorSpecialty,
		Slot:            a.Slot,
		Symptoms:        a.Symptoms,
		Notes:           a.Notes,
		Status:          entity.AppointmentStatus(a.Status),
		CreatedAt:       a.CreatedAt,
	}
}

func (m *AppointmentMapper) ToModel(a *entity.Appointment) *model.Appointment {
	if a == nil {
		return nil
	}
	return &model.Appointment{
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

func (m *AppointmentMapper) ToEntities(models []*model.Appointment) []*entity.Appointment {
	entities := make([]*entity.Appointment, len(models))
	for i, a := range models {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
