package memory

import (
	"fmt"

	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/repository/contract"
)

// DoctorRepository serves the fixed doctor catalog. It is built once and never mutated;
// lookups hand out copies so callers cannot alter the shared data.
type DoctorRepository struct {
	doctors []entity.Doctor
	byId    map[string]int
}

var _ contract.DoctorRepository = (*DoctorRepository)(nil)

func NewDoctorRepository(doctors []entity.Doctor) *DoctorRepository {
	r := &DoctorRepository{
		doctors: make([]entity.Doctor, len(doctors)),
		byId:    make(map[string]int, len(doctors)),
	}
	for i, d := range doctors {
		r.doctors[i] = cloneDoctor(d)
		r.byId[d.Id] = i
	}
	return r
}

func (r *DoctorRepository) FindAll() []*entity.Doctor {
	out := make([]*entity.Doctor, len(r.doctors))
	for i, d := range r.doctors {
		c := cloneDoctor(d)
		out[i] = &c
	}
	return out
}

func (r *DoctorRepository) FindById(id string) (*entity.Doctor, bool) {
	i, ok := r.byId[id]
	if !ok {
		return nil, false
	}
	c := cloneDoctor(r.doctors[i])
	return &c, true
}

func cloneDoctor(d entity.Doctor) entity.Doctor {
	d.AvailableSlots = append([]string(nil), d.AvailableSlots...)
	return d
}

func pexelsImage(id int) string {
	return fmt.Sprintf("https://images.pexels.com/photos/%d/pexels-photo-%d.jpeg?auto=compress&cs=tinysrgb&w=400", id, id)
}

// DefaultDoctors is the catalog the API ships with.
func DefaultDoctors() []entity.Doctor {
	return []entity.Doctor{
		{
			Id:              "doc-1",
			Name:            "Dr. Sarah Chen",
			Specialty:       "General Practitioner",
			ExperienceYears: 12,
			Rating:          4.9,
			AvailableSlots:  []string{"Tomorrow 9:00 AM", "Tomorrow 2:00 PM", "Friday 10:00 AM", "Friday 3:00 PM"},
			ImageURL:        pexelsImage(5215017),
		},
		{
			Id:              "doc-2",
			Name:            "Dr. Michael Roberts",
			Specialty:       "Internal Medicine",
			ExperienceYears: 15,
			Rating:          4.8,
			AvailableSlots:  []string{"Today 4:00 PM", "Tomorrow 11:00 AM", "Thursday 9:00 AM"},
			ImageURL:        pexelsImage(5327580),
		},
		{
			Id:              "doc-3",
			Name:            "Dr. Emily Watson",
			Specialty:       "Family Medicine",
			ExperienceYears: 8,
			Rating:          4.7,
			AvailableSlots:  []string{"Tomorrow 8:00 AM", "Tomorrow 1:00 PM", "Friday 11:00 AM", "Friday 4:00 PM"},
			ImageURL:        pexelsImage(8376277),
		},
		{
			Id:              "doc-4",
			Name:            "Dr. James Liu",
			Specialty:       "Emergency Medicine",
			ExperienceYears: 20,
			Rating:          4.9,
			AvailableSlots:  []string{"Today 6:00 PM", "Tomorrow 7:00 AM", "Saturday 9:00 AM"},
			ImageURL:        pexelsImage(5327656),
		},
	}
}
