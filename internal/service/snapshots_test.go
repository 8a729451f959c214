package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/service"
)

// racingStore simulates another process writing between this process's
// load and save: before each of the first n commits it bumps one collection
// of the commit, target if set and otherwise the first.
type racingStore struct {
	domain.RecordStore
	target domain.Collection
	n      int
	saves  int
}

func (r *racingStore) SaveAll(ctx context.Context, writes []domain.CollectionWrite) error {
	r.saves++
	if r.n > 0 {
		r.n--
		c := writes[0].Collection
		if r.target != "" {
			c = r.target
		}
		snap, err := r.RecordStore.Load(ctx, c)
		if err != nil {
			return err
		}
		if _, err := r.RecordStore.Save(ctx, c, snap.Data, snap.Version); err != nil {
			return err
		}
	}
	return r.RecordStore.SaveAll(ctx, writes)
}

func TestSnapshots_RetriesStaleWrite(t *testing.T) {
	base := newTestServices(t)
	racing := &racingStore{RecordStore: base.store, n: 2}
	schedule := service.NewScheduleService(service.NewSnapshots(racing))

	if _, err := schedule.CreateCoach(context.Background(), domain.Coach{ID: 1}); err != nil {
		t.Fatalf("CreateCoach should succeed after retries: %v", err)
	}
	if racing.saves != 3 {
		t.Fatalf("expected 3 save attempts, got %d", racing.saves)
	}
}

func TestSnapshots_GivesUpAfterRepeatedStaleWrites(t *testing.T) {
	base := newTestServices(t)
	racing := &racingStore{RecordStore: base.store, n: 10}
	schedule := service.NewScheduleService(service.NewSnapshots(racing))

	_, err := schedule.CreateCoach(context.Background(), domain.Coach{ID: 1})
	if !errors.Is(err, domain.ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite, got %v", err)
	}
	coaches, _ := base.schedule.ListCoaches(context.Background())
	if len(coaches) != 0 {
		t.Fatalf("no coach should be stored, got %v", coaches)
	}
}

func TestSnapshots_DeleteClassStaleRegistrationsLeavesNoOrphans(t *testing.T) {
	base := newTestServices(t)
	ctx := context.Background()
	_, class := seedSchedule(t, base)
	seedUsers(t, base, 1)
	if _, err := base.schedule.RegisterForClass(ctx, 1, class.ID); err != nil {
		t.Fatalf("RegisterForClass: %v", err)
	}

	racing := &racingStore{RecordStore: base.store, target: domain.CollectionRegistrations, n: 1}
	schedule := service.NewScheduleService(service.NewSnapshots(racing))
	if err := schedule.DeleteClass(ctx, class.ID); err != nil {
		t.Fatalf("DeleteClass: %v", err)
	}
	if racing.saves != 2 {
		t.Fatalf("expected 2 commit attempts, got %d", racing.saves)
	}

	classes, _ := base.schedule.ListClasses(ctx)
	regs, _ := base.schedule.ListAllRegistrations(ctx)
	if len(classes) != 0 || len(regs) != 0 {
		t.Fatalf("expected class and registrations removed, got classes=%v regs=%v", classes, regs)
	}
}

func TestSnapshots_DeleteUserStaleRegistrationsCascades(t *testing.T) {
	base := newTestServices(t)
	ctx := context.Background()
	_, class := seedSchedule(t, base)
	seedUsers(t, base, 2)
	if _, err := base.schedule.RegisterForClass(ctx, 2, class.ID); err != nil {
		t.Fatalf("RegisterForClass: %v", err)
	}
	profile := domain.HealthProfile{WeightKg: 60, HeightCm: 160, Age: 25, Gender: domain.GenderFemale, Goal: domain.GoalLoss}
	if _, err := base.recs.ComputeAndStore(ctx, 2, profile); err != nil {
		t.Fatalf("ComputeAndStore: %v", err)
	}

	racing := &racingStore{RecordStore: base.store, target: domain.CollectionRegistrations, n: 1}
	auth := service.NewAuthService(service.NewSnapshots(racing), testJWTSecret, 4, time.Hour)
	if err := auth.DeleteUser(ctx, 2); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := base.auth.GetUserByID(ctx, 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
	if regs, _ := base.schedule.ListRegistrationsFor(ctx, 2); len(regs) != 0 {
		t.Fatalf("expected registrations removed, got %v", regs)
	}
	if _, err := base.recs.Get(ctx, 2); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected recommendation removed, got %v", err)
	}
	if _, err := base.auth.GetUserByID(ctx, 1); err != nil {
		t.Fatalf("other user should remain: %v", err)
	}
}

func TestSnapshots_ExhaustedRetriesWriteNothing(t *testing.T) {
	base := newTestServices(t)
	ctx := context.Background()
	_, class := seedSchedule(t, base)
	seedUsers(t, base, 1)
	if _, err := base.schedule.RegisterForClass(ctx, 1, class.ID); err != nil {
		t.Fatalf("RegisterForClass: %v", err)
	}

	racing := &racingStore{RecordStore: base.store, target: domain.CollectionRegistrations, n: 10}
	schedule := service.NewScheduleService(service.NewSnapshots(racing))
	if err := schedule.DeleteClass(ctx, class.ID); !errors.Is(err, domain.ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite, got %v", err)
	}

	classes, _ := base.schedule.ListClasses(ctx)
	regs, _ := base.schedule.ListAllRegistrations(ctx)
	if len(classes) != 1 || len(regs) != 1 {
		t.Fatalf("expected nothing deleted, got classes=%v regs=%v", classes, regs)
	}
}
