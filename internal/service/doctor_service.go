package service

import (
	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/repository/contract"
)

type IDoctorService interface {
	ListDoctors() []*dto.DoctorResponse
	GetDoctor(id string) (*dto.DoctorResponse, error)
}

type doctorService struct {
	doctors contract.DoctorRepository
}

func NewDoctorService(doctors contract.DoctorRepository) IDoctorService {
	return &doctorService{doctors: doctors}
}

func (s *doctorService) ListDoctors() []*dto.DoctorResponse {
	all := s.doctors.FindAll()
	res := make([]*dto.DoctorResponse, len(all))
	for i, d := range all {
		res[i] = toDoctorResponse(d)
	}
	return res
}

func (s *doctorService) GetDoctor(id string) (*dto.DoctorResponse, error) {
	d, ok := s.doctors.FindById(id)
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return toDoctorResponse(d), nil
}

func toDoctorResponse(d *entity.Doctor) *dto.DoctorResponse {
	return &dto.DoctorResponse{
		Id:              d.Id,
		Name:            d.Name,
		Specialty:       d.Specialty,
		ExperienceYears: d.ExperienceYears,
		Rating:          d.Rating,
		AvailableSlots:  d.AvailableSlots,
		ImageURL:        d.ImageURL,
	}
}
