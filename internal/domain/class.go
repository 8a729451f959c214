package domain

// Class types known to the recommendation engine.
const (
	ClassTypeHIIT    = "HIIT"
	ClassTypeCardio  = "Cardio"
	ClassTypeAbs     = "Abs Training"
	ClassTypeMuscle  = "MUSCLE Training"
	ClassTypeYoga    = "Yoga"
	ClassTypePilates = "Pilates"
)

// FitnessClass is a scheduled class led by a coach. Start and end times are
// kept as the strings the client sent.
type FitnessClass struct {
	ID        int64  `json:"class_id"`
	CoachID   int64  `json:"coach_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ClassType string `json:"class_type"`
}

// Registration records that a user signed up for a class.
type Registration struct {
	UserID  int64 `json:"user_id"`
	ClassID int64 `json:"class_id"`
}
