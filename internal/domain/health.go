package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Goal string

const (
	GoalMaintain    Goal = "maintain"
	GoalMildLoss    Goal = "mild_loss"
	GoalLoss        Goal = "loss"
	GoalExtremeLoss Goal = "extreme_loss"
	GoalMildGain    Goal = "mild_gain"
	GoalGain        Goal = "gain"
	GoalExtremeGain Goal = "extreme_gain"
)

// HealthProfile is the transient input to a recommendation. It is never stored.
type HealthProfile struct {
	WeightKg float64 `json:"weight"`
	HeightCm float64 `json:"height"`
	Age      int     `json:"age"`
	Gender   Gender  `json:"gender"`
	Goal     Goal    `json:"goal"`
}

// Recommendation is the stored outcome of a BMR calculation. At most one
// exists per user; computing a new one replaces the previous.
type Recommendation struct {
	UserID              int64        `json:"user_id"`
	Goal                Goal         `json:"goal"`
	BMR                 float64      `json:"bmr"`
	ClassRecommendation FitnessClass `json:"class_recommendation"`
	CreatedAt           time.Time    `json:"created_at"`
}
