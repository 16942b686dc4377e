package dto

type DoctorResponse struct {
	Id              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	ExperienceYears int      `json:"experience_years"`
	Rating          float64  `json:"rating"`
	AvailableSlots  []string `json:"available_slots"`
	ImageURL        string   `json:"image_url"`
}
