package engine

import (
	"fmt"
	"slices"

	"github.com/msomdec/fitcoach/internal/domain"
)

// CreateCoach appends a coach with a caller-supplied ID.
func CreateCoach(candidate domain.Coach, coaches []domain.Coach) (domain.Coach, []domain.Coach, error) {
	if err := validateCoach(candidate); err != nil {
		return domain.Coach{}, coaches, err
	}
	if candidate.ID <= 0 {
		return domain.Coach{}, coaches, fmt.Errorf("%w: coach_id must be positive", domain.ErrInvalidInput)
	}
	if findCoach(coaches, candidate.ID) >= 0 {
		return domain.Coach{}, coaches, fmt.Errorf("coach %d: %w", candidate.ID, domain.ErrDuplicateID)
	}
	return candidate, append(slices.Clone(coaches), candidate), nil
}

// UpdateCoach replaces the whole record. The coach ID in patch is ignored.
func UpdateCoach(id int64, patch domain.Coach, coaches []domain.Coach) (domain.Coach, []domain.Coach, error) {
	i := findCoach(coaches, id)
	if i < 0 {
		return domain.Coach{}, coaches, fmt.Errorf("coach %d: %w", id, domain.ErrNotFound)
	}
	if err := validateCoach(patch); err != nil {
		return domain.Coach{}, coaches, err
	}
	patch.ID = id
	next := slices.Clone(coaches)
	next[i] = patch
	return patch, next, nil
}

// DeleteCoach removes a coach. Deleting an unknown ID is a no-op. A coach
// that still leads a scheduled class cannot be removed.
func DeleteCoach(id int64, coaches []domain.Coach, classes []domain.FitnessClass) ([]domain.Coach, error) {
	if findCoach(coaches, id) < 0 {
		return coaches, nil
	}
	if slices.ContainsFunc(classes, func(c domain.FitnessClass) bool { return c.CoachID == id }) {
		return coaches, fmt.Errorf("coach %d: %w", id, domain.ErrCoachInUse)
	}
	return slices.DeleteFunc(slices.Clone(coaches), func(c domain.Coach) bool { return c.ID == id }), nil
}

func validateCoach(c domain.Coach) error {
	if c.ExperienceYears < 0 {
		return fmt.Errorf("%w: experience_years must not be negative", domain.ErrInvalidInput)
	}
	if c.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly_rate must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func findCoach(coaches []domain.Coach, id int64) int {
	return slices.IndexFunc(coaches, func(c domain.Coach) bool { return c.ID == id })
}
