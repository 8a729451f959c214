package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/engine"
	"github.com/msomdec/fitcoach/internal/metrics"
)

// ScheduleService manages coaches, fitness classes and registrations.
type ScheduleService struct {
	snaps *Snapshots
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(snaps *Snapshots) *ScheduleService {
	return &ScheduleService{snaps: snaps}
}

// ListCoaches returns all coaches.
func (s *ScheduleService) ListCoaches(ctx context.Context) ([]domain.Coach, error) {
	return load[domain.Coach](ctx, s.snaps.store, domain.CollectionCoaches)
}

// CreateCoach adds a coach with a caller-supplied ID.
func (s *ScheduleService) CreateCoach(ctx context.Context, c domain.Coach) (*domain.Coach, error) {
	var created domain.Coach
	err := s.snaps.update(ctx, []domain.Collection{domain.CollectionCoaches}, func(t *txn) error {
		coaches, err := read[domain.Coach](t, domain.CollectionCoaches)
		if err != nil {
			return err
		}
		coach, next, err := engine.CreateCoach(c, coaches)
		if err != nil {
			return err
		}
		created = coach
		return write(t, domain.CollectionCoaches, next)
	})
	if err != nil {
		return nil, fmt.Errorf("create coach: %w", err)
	}
	return &created, nil
}

// UpdateCoach replaces the coach stored under id.
func (s *ScheduleService) UpdateCoach(ctx context.Context, id int64, c domain.Coach) (*domain.Coach, error) {
	var updated domain.Coach
	err := s.snaps.update(ctx, []domain.Collection{domain.CollectionCoaches}, func(t *txn) error {
		coaches, err := read[domain.Coach](t, domain.CollectionCoaches)
		if err != nil {
			return err
		}
		coach, next, err := engine.UpdateCoach(id, c, coaches)
		if err != nil {
			return err
		}
		updated = coach
		return write(t, domain.CollectionCoaches, next)
	})
	if err != nil {
		return nil, fmt.Errorf("update coach: %w", err)
	}
	return &updated, nil
}

// DeleteCoach removes a coach. Unknown IDs are ignored.
func (s *ScheduleService) DeleteCoach(ctx context.Context, id int64) error {
	cols := []domain.Collection{domain.CollectionCoaches, domain.CollectionClasses}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		coaches, err := read[domain.Coach](t, domain.CollectionCoaches)
		if err != nil {
			return err
		}
		classes, err := read[domain.FitnessClass](t, domain.CollectionClasses)
		if err != nil {
			return err
		}
		next, err := engine.DeleteCoach(id, coaches, classes)
		if err != nil {
			return err
		}
		if len(next) == len(coaches) {
			return nil
		}
		return write(t, domain.CollectionCoaches, next)
	})
	if err != nil {
		return fmt.Errorf("delete coach: %w", err)
	}
	return nil
}

// ListClasses returns all fitness classes.
func (s *ScheduleService) ListClasses(ctx context.Context) ([]domain.FitnessClass, error) {
	return load[domain.FitnessClass](ctx, s.snaps.store, domain.CollectionClasses)
}

// CreateClass schedules a class and assigns its ID.
func (s *ScheduleService) CreateClass(ctx context.Context, c domain.FitnessClass) (*domain.FitnessClass, error) {
	var created domain.FitnessClass
	cols := []domain.Collection{domain.CollectionCoaches, domain.CollectionClasses}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		coaches, err := read[domain.Coach](t, domain.CollectionCoaches)
		if err != nil {
			return err
		}
		classes, err := read[domain.FitnessClass](t, domain.CollectionClasses)
		if err != nil {
			return err
		}
		class, next, err := engine.CreateClass(c, classes, coaches)
		if err != nil {
			return err
		}
		created = class
		return write(t, domain.CollectionClasses, next)
	})
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}
	return &created, nil
}

// UpdateClass replaces the class stored under id.
func (s *ScheduleService) UpdateClass(ctx context.Context, id int64, c domain.FitnessClass) (*domain.FitnessClass, error) {
	var updated domain.FitnessClass
	cols := []domain.Collection{domain.CollectionCoaches, domain.CollectionClasses}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		coaches, err := read[domain.Coach](t, domain.CollectionCoaches)
		if err != nil {
			return err
		}
		classes, err := read[domain.FitnessClass](t, domain.CollectionClasses)
		if err != nil {
			return err
		}
		class, next, err := engine.UpdateClass(id, c, classes, coaches)
		if err != nil {
			return err
		}
		updated = class
		return write(t, domain.CollectionClasses, next)
	})
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return &updated, nil
}

// DeleteClass removes a class and its registrations. Unknown IDs are ignored.
func (s *ScheduleService) DeleteClass(ctx context.Context, id int64) error {
	cols := []domain.Collection{domain.CollectionClasses, domain.CollectionRegistrations}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		classes, err := read[domain.FitnessClass](t, domain.CollectionClasses)
		if err != nil {
			return err
		}
		regs, err := read[domain.Registration](t, domain.CollectionRegistrations)
		if err != nil {
			return err
		}
		nextClasses, nextRegs := engine.DeleteClass(id, classes, regs)
		if len(nextClasses) == len(classes) {
			return nil
		}
		if err := write(t, domain.CollectionClasses, nextClasses); err != nil {
			return err
		}
		if len(nextRegs) == len(regs) {
			return nil
		}
		return write(t, domain.CollectionRegistrations, nextRegs)
	})
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}

// RegisterForClass signs an existing user up for a class.
func (s *ScheduleService) RegisterForClass(ctx context.Context, userID, classID int64) (*domain.Registration, error) {
	var created domain.Registration
	cols := []domain.Collection{domain.CollectionUsers, domain.CollectionClasses, domain.CollectionRegistrations}
	err := s.snaps.update(ctx, cols, func(t *txn) error {
		users, err := read[domain.User](t, domain.CollectionUsers)
		if err != nil {
			return err
		}
		if _, err := engine.FindUser(userID, users); err != nil {
			return err
		}
		classes, err := read[domain.FitnessClass](t, domain.CollectionClasses)
		if err != nil {
			return err
		}
		regs, err := read[domain.Registration](t, domain.CollectionRegistrations)
		if err != nil {
			return err
		}
		reg, next, err := engine.Register(domain.Registration{UserID: userID, ClassID: classID}, classes, regs)
		if err != nil {
			return err
		}
		created = reg
		return write(t, domain.CollectionRegistrations, next)
	})
	switch {
	case err == nil:
		metrics.RecordRegistration("created")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		metrics.RecordRegistration("duplicate")
	case errors.Is(err, domain.ErrClassNotFound):
		metrics.RecordRegistration("class_not_found")
	case errors.Is(err, domain.ErrNotFound):
		metrics.RecordRegistration("user_not_found")
	default:
		metrics.RecordRegistration("error")
	}
	if err != nil {
		return nil, fmt.Errorf("register for class: %w", err)
	}
	return &created, nil
}

// CancelRegistration removes a user's registration for a class. It is not
// an error if no such registration exists.
func (s *ScheduleService) CancelRegistration(ctx context.Context, userID, classID int64) error {
	err := s.snaps.update(ctx, []domain.Collection{domain.CollectionRegistrations}, func(t *txn) error {
		regs, err := read[domain.Registration](t, domain.CollectionRegistrations)
		if err != nil {
			return err
		}
		next := engine.CancelRegistration(userID, classID, regs)
		if len(next) == len(regs) {
			return nil
		}
		return write(t, domain.CollectionRegistrations, next)
	})
	if err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

// ListRegistrationsFor returns the registrations of one user.
func (s *ScheduleService) ListRegistrationsFor(ctx context.Context, userID int64) ([]domain.Registration, error) {
	regs, err := load[domain.Registration](ctx, s.snaps.store, domain.CollectionRegistrations)
	if err != nil {
		return nil, err
	}
	return engine.RegistrationsFor(userID, regs), nil
}

// ListAllRegistrations returns every registration.
func (s *ScheduleService) ListAllRegistrations(ctx context.Context) ([]domain.Registration, error) {
	return load[domain.Registration](ctx, s.snaps.store, domain.CollectionRegistrations)
}
