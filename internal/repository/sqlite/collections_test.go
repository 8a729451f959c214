package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/msomdec/fitcoach/internal/domain"
)

func TestCollectionStore_LoadMissing(t *testing.T) {
	store := newTestDB(t).Collections()

	snap, err := store.Load(context.Background(), domain.CollectionCoaches)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Version != 0 {
		t.Fatalf("expected version 0, got %d", snap.Version)
	}
	if string(snap.Data) != "[]" {
		t.Fatalf("expected empty array, got %s", snap.Data)
	}
}

func TestCollectionStore_SaveAndLoad(t *testing.T) {
	store := newTestDB(t).Collections()
	ctx := context.Background()

	data := json.RawMessage(`[{"coach_id":1,"first_name":"Ana"}]`)
	v, err := store.Save(ctx, domain.CollectionCoaches, data, 0)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if v != 1 {
		t.Fatalf("expected version 1, got %d", v)
	}

	v, err = store.Save(ctx, domain.CollectionCoaches, json.RawMessage(`[]`), 1)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if v != 2 {
		t.Fatalf("expected version 2, got %d", v)
	}

	snap, err := store.Load(ctx, domain.CollectionCoaches)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Version != 2 || string(snap.Data) != "[]" {
		t.Fatalf("unexpected snapshot: version=%d data=%s", snap.Version, snap.Data)
	}
}

func TestCollectionStore_StaleWrite(t *testing.T) {
	store := newTestDB(t).Collections()
	ctx := context.Background()

	if _, err := store.Save(ctx, domain.CollectionUsers, json.RawMessage(`[]`), 0); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name    string
		version int64
	}{
		{"first write again", 0},
		{"future version", 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Save(ctx, domain.CollectionUsers, json.RawMessage(`[{"user_id":1}]`), tc.version)
			if !errors.Is(err, domain.ErrStaleWrite) {
				t.Fatalf("expected ErrStaleWrite, got %v", err)
			}
		})
	}

	snap, _ := store.Load(ctx, domain.CollectionUsers)
	if string(snap.Data) != "[]" {
		t.Fatalf("stale writes must not change data, got %s", snap.Data)
	}
}

func TestCollectionStore_InvalidJSON(t *testing.T) {
	store := newTestDB(t).Collections()

	_, err := store.Save(context.Background(), domain.CollectionUsers, json.RawMessage(`[{`), 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCollectionStore_ConcurrentSavesOneWins(t *testing.T) {
	store := newTestDB(t).Collections()
	ctx := context.Background()

	const writers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		wins   int
		stales int
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Save(ctx, domain.CollectionRegistrations, json.RawMessage(`[{"user_id":1,"class_id":1}]`), 0)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrStaleWrite):
				stales++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if wins != 1 || stales != writers-1 {
		t.Fatalf("expected exactly one winner, got wins=%d stales=%d", wins, stales)
	}
}

func TestCollectionStore_SaveAllRollsBackOnStaleWrite(t *testing.T) {
	store := newTestDB(t).Collections()
	ctx := context.Background()

	if _, err := store.Save(ctx, domain.CollectionClasses, json.RawMessage(`[{"class_id":1}]`), 0); err != nil {
		t.Fatalf("Save classes: %v", err)
	}
	if _, err := store.Save(ctx, domain.CollectionRegistrations, json.RawMessage(`[{"user_id":7,"class_id":1}]`), 0); err != nil {
		t.Fatalf("Save registrations: %v", err)
	}
	// Another writer moves registrations to version 2.
	if _, err := store.Save(ctx, domain.CollectionRegistrations, json.RawMessage(`[{"user_id":7,"class_id":1}]`), 1); err != nil {
		t.Fatalf("concurrent Save: %v", err)
	}

	err := store.SaveAll(ctx, []domain.CollectionWrite{
		{Collection: domain.CollectionClasses, Data: json.RawMessage(`[]`), ExpectedVersion: 1},
		{Collection: domain.CollectionRegistrations, Data: json.RawMessage(`[]`), ExpectedVersion: 1},
	})
	if !errors.Is(err, domain.ErrStaleWrite) {
		t.Fatalf("expected ErrStaleWrite, got %v", err)
	}

	classes, err := store.Load(ctx, domain.CollectionClasses)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if classes.Version != 1 || string(classes.Data) != `[{"class_id":1}]` {
		t.Fatalf("classes write should be rolled back, got version=%d data=%s", classes.Version, classes.Data)
	}

	err = store.SaveAll(ctx, []domain.CollectionWrite{
		{Collection: domain.CollectionClasses, Data: json.RawMessage(`[]`), ExpectedVersion: 1},
		{Collection: domain.CollectionRegistrations, Data: json.RawMessage(`[]`), ExpectedVersion: 2},
	})
	if err != nil {
		t.Fatalf("SaveAll with current versions: %v", err)
	}
	for c, want := range map[domain.Collection]int64{domain.CollectionClasses: 2, domain.CollectionRegistrations: 3} {
		snap, _ := store.Load(ctx, c)
		if snap.Version != want || string(snap.Data) != "[]" {
			t.Fatalf("%s: expected version %d with empty data, got version=%d data=%s", c, want, snap.Version, snap.Data)
		}
	}
}
