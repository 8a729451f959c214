package engine

import (
	"fmt"
	"slices"

	"github.com/msomdec/fitcoach/internal/domain"
)

// Register appends a registration. The class must exist at registration
// time and the (user, class) pair must not already be present.
func Register(candidate domain.Registration, classes []domain.FitnessClass, regs []domain.Registration) (domain.Registration, []domain.Registration, error) {
	if findClass(classes, candidate.ClassID) < 0 {
		return domain.Registration{}, regs, fmt.Errorf("class %d: %w", candidate.ClassID, domain.ErrClassNotFound)
	}
	if slices.Contains(regs, candidate) {
		return domain.Registration{}, regs, domain.ErrAlreadyRegistered
	}
	return candidate, append(slices.Clone(regs), candidate), nil
}

// CancelRegistration removes the matching pair if present.
func CancelRegistration(userID, classID int64, regs []domain.Registration) []domain.Registration {
	target := domain.Registration{UserID: userID, ClassID: classID}
	if !slices.Contains(regs, target) {
		return regs
	}
	return slices.DeleteFunc(slices.Clone(regs), func(r domain.Registration) bool { return r == target })
}

// RegistrationsFor returns the registrations belonging to userID.
func RegistrationsFor(userID int64, regs []domain.Registration) []domain.Registration {
	out := []domain.Registration{}
	for _, r := range regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}
