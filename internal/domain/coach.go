package domain

// Coach is a trainer profile. Coach IDs are supplied by the caller.
type Coach struct {
	ID              int64  `json:"coach_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	ExperienceYears int    `json:"experience_years"`
	HourlyRate      int    `json:"hourly_rate"`
	Availability    string `json:"availability"`
	Bio             string `json:"bio"`
}
