package contract

import "healthcare-chatbot-be/internal/entity"

type DoctorRepository interface {
	FindAll() []*entity.Doctor
	FindById(id string) (*entity.Doctor, bool)
}
