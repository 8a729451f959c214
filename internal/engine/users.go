package engine

import (
	"fmt"
	"slices"

	"github.com/msomdec/fitcoach/internal/domain"
)

// Verifier compares a raw credential with a stored hash.
type Verifier interface {
	Verify(raw, hash string) bool
}

// CreateUser assigns the next sequential user ID and appends the candidate.
// Usernames are compared exactly, so "Alice" and "alice" are distinct.
func CreateUser(candidate domain.User, users []domain.User) (domain.User, []domain.User, error) {
	if candidate.Username == "" {
		return domain.User{}, users, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !candidate.Role.Valid() {
		return domain.User{}, users, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, candidate.Role)
	}
	if findUserByName(users, candidate.Username) >= 0 {
		return domain.User{}, users, domain.ErrDuplicateUsername
	}

	candidate.ID = nextUserID(users)
	return candidate, append(slices.Clone(users), candidate), nil
}

// Authenticate returns the user matching username whose hash verifies raw.
// An unknown username and a wrong credential are indistinguishable.
func Authenticate(username, raw string, users []domain.User, v Verifier) (domain.User, error) {
	i := findUserByName(users, username)
	if i < 0 {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	user := users[i]
	if !v.Verify(raw, user.PasswordHash) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if user.Disabled {
		return domain.User{}, domain.ErrAccountDisabled
	}
	return user, nil
}

// UpdateUser replaces the stored user with patch, keeping the ID. An empty
// PasswordHash in patch keeps the existing hash.
func UpdateUser(id int64, patch domain.User, users []domain.User) (domain.User, []domain.User, error) {
	i := findUser(users, id)
	if i < 0 {
		return domain.User{}, users, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if patch.Username == "" {
		return domain.User{}, users, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}
	if !patch.Role.Valid() {
		return domain.User{}, users, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, patch.Role)
	}
	if j := findUserByName(users, patch.Username); j >= 0 && j != i {
		return domain.User{}, users, domain.ErrDuplicateUsername
	}

	patch.ID = id
	if patch.PasswordHash == "" {
		patch.PasswordHash = users[i].PasswordHash
	}
	next := slices.Clone(users)
	next[i] = patch
	return patch, next, nil
}

// DeleteUser removes a user together with their registrations and
// recommendation. Unlike the other deletes, a missing user is an error.
func DeleteUser(id int64, users []domain.User, regs []domain.Registration, recs []domain.Recommendation) ([]domain.User, []domain.Registration, []domain.Recommendation, error) {
	if findUser(users, id) < 0 {
		return users, regs, recs, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	nextUsers := slices.DeleteFunc(slices.Clone(users), func(u domain.User) bool { return u.ID == id })
	nextRegs := slices.DeleteFunc(slices.Clone(regs), func(r domain.Registration) bool { return r.UserID == id })
	nextRecs := slices.DeleteFunc(slices.Clone(recs), func(r domain.Recommendation) bool { return r.UserID == id })
	return nextUsers, nextRegs, nextRecs, nil
}

// FindUser returns the user with the given ID.
func FindUser(id int64, users []domain.User) (domain.User, error) {
	i := findUser(users, id)
	if i < 0 {
		return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return users[i], nil
}

func nextUserID(users []domain.User) int64 {
	var maxID int64
	for _, u := range users {
		maxID = max(maxID, u.ID)
	}
	return maxID + 1
}

func findUser(users []domain.User, id int64) int {
	return slices.IndexFunc(users, func(u domain.User) bool { return u.ID == id })
}

func findUserByName(users []domain.User, username string) int {
	return slices.IndexFunc(users, func(u domain.User) bool { return u.Username == username })
}
