package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateID        = errors.New("id already exists")
	ErrClassNotFound      = errors.New("fitness class not found")
	ErrCoachNotFound      = errors.New("coach not found")
	ErrCoachInUse         = errors.New("coach has scheduled classes")
	ErrAlreadyRegistered  = errors.New("user already registered for this class")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrUnauthorized       = errors.New("access forbidden")
	ErrInvalidGoal        = errors.New("invalid goal")
	ErrNoSuitableClass    = errors.New("no suitable class available")
	ErrStaleWrite         = errors.New("stale write: collection changed since it was read")
	ErrInvalidInput       = errors.New("invalid input")
)
