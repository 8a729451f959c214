// Package recommend computes a basal metabolic rate from a health profile
// and picks a fitness class suited to the user's goal.
package recommend

import (
	"fmt"

	"github.com/msomdec/fitcoach/internal/domain"
)

var goalMultipliers = map[domain.Goal]float64{
	domain.GoalMaintain:    1.0,
	domain.GoalMildLoss:    0.83,
	domain.GoalLoss:        0.66,
	domain.GoalExtremeLoss: 0.32,
	domain.GoalMildGain:    1.17,
	domain.GoalGain:        1.34,
	domain.GoalExtremeGain: 1.68,
}

// CalculateBMR returns the Mifflin-St Jeor estimate for the profile, scaled
// by the multiplier of its goal.
func CalculateBMR(p domain.HealthProfile) (float64, error) {
	if p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 {
		return 0, fmt.Errorf("%w: weight, height and age must be positive", domain.ErrInvalidInput)
	}
	multiplier, ok := goalMultipliers[p.Goal]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidGoal, p.Goal)
	}

	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	switch p.Gender {
	case domain.GenderMale:
		base += 5
	case domain.GenderFemale:
		base -= 161
	default:
		return 0, fmt.Errorf("%w: gender must be male or female", domain.ErrInvalidInput)
	}
	return base * multiplier, nil
}
