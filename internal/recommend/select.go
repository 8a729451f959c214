package recommend

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/msomdec/fitcoach/internal/domain"
)

// Chooser picks one class from a non-empty candidate list.
type Chooser interface {
	Choose(candidates []domain.FitnessClass) domain.FitnessClass
}

// UniformRandom chooses uniformly at random.
type UniformRandom struct{}

func (UniformRandom) Choose(candidates []domain.FitnessClass) domain.FitnessClass {
	return candidates[rand.IntN(len(candidates))]
}

// FirstMatch chooses the candidate with the lowest class ID, which makes
// selection independent of inventory order.
type FirstMatch struct{}

func (FirstMatch) Choose(candidates []domain.FitnessClass) domain.FitnessClass {
	return slices.MinFunc(candidates, func(a, b domain.FitnessClass) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

// ChooserByName maps a configuration value to a Chooser.
func ChooserByName(name string) (Chooser, error) {
	switch name {
	case "", "random":
		return UniformRandom{}, nil
	case "first":
		return FirstMatch{}, nil
	}
	return nil, fmt.Errorf("unknown recommendation strategy %q", name)
}

func isLoss(g domain.Goal) bool {
	return g == domain.GoalMildLoss || g == domain.GoalLoss || g == domain.GoalExtremeLoss
}

func isGain(g domain.Goal) bool {
	return g == domain.GoalMildGain || g == domain.GoalGain || g == domain.GoalExtremeGain
}

// CandidateTypes returns the class types suited to goal at the given BMR.
func CandidateTypes(goal domain.Goal, bmr float64) []string {
	switch {
	case isLoss(goal) && bmr < 2000:
		return []string{domain.ClassTypeHIIT, domain.ClassTypeCardio, domain.ClassTypeAbs}
	case isGain(goal) && bmr > 1500:
		return []string{domain.ClassTypeMuscle, domain.ClassTypeAbs}
	default:
		return []string{domain.ClassTypeYoga, domain.ClassTypePilates, domain.ClassTypeMuscle, domain.ClassTypeAbs}
	}
}

// SelectClass filters inventory down to the candidate types for goal and bmr
// and lets chooser pick one. Class types compare case-insensitively.
func SelectClass(goal domain.Goal, bmr float64, inventory []domain.FitnessClass, chooser Chooser) (domain.FitnessClass, error) {
	types := CandidateTypes(goal, bmr)
	var candidates []domain.FitnessClass
	for _, c := range inventory {
		if slices.ContainsFunc(types, func(t string) bool { return strings.EqualFold(t, c.ClassType) }) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return domain.FitnessClass{}, fmt.Errorf("%w for goal %q", domain.ErrNoSuitableClass, goal)
	}
	return chooser.Choose(candidates), nil
}

// Recommender turns a health profile and the current class inventory into
// a Recommendation.
type Recommender struct {
	chooser Chooser
	now     func() time.Time
}

// NewRecommender creates a Recommender. A nil chooser selects uniformly at random.
func NewRecommender(chooser Chooser) *Recommender {
	if chooser == nil {
		chooser = UniformRandom{}
	}
	return &Recommender{chooser: chooser, now: time.Now}
}

// Recommend computes the BMR for profile and selects a class from inventory.
func (r *Recommender) Recommend(userID int64, profile domain.HealthProfile, inventory []domain.FitnessClass) (domain.Recommendation, error) {
	bmr, err := CalculateBMR(profile)
	if err != nil {
		return domain.Recommendation{}, err
	}
	class, err := SelectClass(profile.Goal, bmr, inventory, r.chooser)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return domain.Recommendation{
		UserID:              userID,
		Goal:                profile.Goal,
		BMR:                 bmr,
		ClassRecommendation: class,
		CreatedAt:           r.now().UTC(),
	}, nil
}
