package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msomdec/fitcoach/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestImportLegacy(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	dir := t.TempDir()

	writeFile(t, dir, "coaches.json", `[{"coach_id": 1, "first_name": "Budi", "last_name": "S", "email": "b@x.id",
		"phone_number": "0812", "experience_years": 4, "hourly_rate_idr": 200000, "availability": "Mon", "bio": ""}]`)
	writeFile(t, dir, "fitness_classes.json", `[{"class_id": 3, "coach_id": 1, "start_time": "08:00", "end_time": "09:00", "class_type": "Yoga"}]`)
	writeFile(t, dir, "registrations.json", `[{"user_id": 2, "class_id": 3}]`)

	n, err := s.snaps.ImportLegacy(ctx, dir)
	if err != nil {
		t.Fatalf("ImportLegacy: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 collections imported, got %d", n)
	}

	coaches, _ := s.schedule.ListCoaches(ctx)
	if len(coaches) != 1 || coaches[0].HourlyRate != 200000 {
		t.Fatalf("expected legacy hourly rate to be mapped, got %+v", coaches)
	}
	classes, _ := s.schedule.ListClasses(ctx)
	if len(classes) != 1 || classes[0].ClassType != domain.ClassTypeYoga {
		t.Fatalf("unexpected classes %+v", classes)
	}

	// A second import leaves populated collections alone.
	writeFile(t, dir, "registrations.json", `[{"user_id": 9, "class_id": 3}]`)
	n, err = s.snaps.ImportLegacy(ctx, dir)
	if err != nil {
		t.Fatalf("second ImportLegacy: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected nothing imported, got %d", n)
	}
	regs, _ := s.schedule.ListAllRegistrations(ctx)
	if len(regs) != 1 || regs[0].UserID != 2 {
		t.Fatalf("registrations were overwritten: %+v", regs)
	}
}

func TestImportLegacy_InvalidFile(t *testing.T) {
	s := newTestServices(t)
	dir := t.TempDir()
	writeFile(t, dir, "users_db.json", `{"not": "an array"}`)

	if _, err := s.snaps.ImportLegacy(context.Background(), dir); err == nil {
		t.Fatal("expected an error for a malformed file")
	}
}
