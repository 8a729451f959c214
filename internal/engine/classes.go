package engine

import (
	"fmt"
	"slices"

	"github.com/msomdec/fitcoach/internal/domain"
)

// CreateClass assigns the next class ID (highest existing + 1) and appends
// the candidate. Any ID supplied by the caller is discarded. The referenced
// coach must exist.
func CreateClass(candidate domain.FitnessClass, classes []domain.FitnessClass, coaches []domain.Coach) (domain.FitnessClass, []domain.FitnessClass, error) {
	if err := validateClass(candidate, coaches); err != nil {
		return domain.FitnessClass{}, classes, err
	}
	var maxID int64
	for _, c := range classes {
		maxID = max(maxID, c.ID)
	}
	candidate.ID = maxID + 1
	return candidate, append(slices.Clone(classes), candidate), nil
}

// UpdateClass replaces the whole record, keeping the class ID.
func UpdateClass(id int64, patch domain.FitnessClass, classes []domain.FitnessClass, coaches []domain.Coach) (domain.FitnessClass, []domain.FitnessClass, error) {
	i := findClass(classes, id)
	if i < 0 {
		return domain.FitnessClass{}, classes, fmt.Errorf("class %d: %w", id, domain.ErrNotFound)
	}
	if err := validateClass(patch, coaches); err != nil {
		return domain.FitnessClass{}, classes, err
	}
	patch.ID = id
	next := slices.Clone(classes)
	next[i] = patch
	return patch, next, nil
}

// DeleteClass removes a class and every registration for it. Deleting an
// unknown ID is a no-op.
func DeleteClass(id int64, classes []domain.FitnessClass, regs []domain.Registration) ([]domain.FitnessClass, []domain.Registration) {
	if findClass(classes, id) < 0 {
		return classes, regs
	}
	nextClasses := slices.DeleteFunc(slices.Clone(classes), func(c domain.FitnessClass) bool { return c.ID == id })
	nextRegs := slices.DeleteFunc(slices.Clone(regs), func(r domain.Registration) bool { return r.ClassID == id })
	return nextClasses, nextRegs
}

func validateClass(c domain.FitnessClass, coaches []domain.Coach) error {
	if c.ClassType == "" {
		return fmt.Errorf("%w: class_type is required", domain.ErrInvalidInput)
	}
	if findCoach(coaches, c.CoachID) < 0 {
		return fmt.Errorf("coach %d: %w", c.CoachID, domain.ErrCoachNotFound)
	}
	return nil
}

func findClass(classes []domain.FitnessClass, id int64) int {
	return slices.IndexFunc(classes, func(c domain.FitnessClass) bool { return c.ID == id })
}
