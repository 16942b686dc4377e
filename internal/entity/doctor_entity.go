package entity

type Doctor struct {
	Id              string
	Name            string
	Specialty       string
	ExperienceYears int
	Rating          float64
	AvailableSlots  []string
	ImageURL        string
}

// HasSlot reports whether slot is one of the doctor's listed labels.
func (d *Doctor) HasSlot(slot string) bool {
	for _, s := range d.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}
