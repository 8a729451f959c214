package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/metrics"
)

const maxWriteAttempts = 3

// Snapshots runs read-modify-write cycles against a RecordStore. Writers of
// the same collection are serialised in-process, and every save is a
// compare-and-swap so writers in other processes are detected as stale and
// the cycle is retried.
type Snapshots struct {
	store domain.RecordStore
	locks map[domain.Collection]*sync.Mutex
}

func NewSnapshots(store domain.RecordStore) *Snapshots {
	locks := make(map[domain.Collection]*sync.Mutex, len(domain.Collections))
	for _, c := range domain.Collections {
		locks[c] = &sync.Mutex{}
	}
	return &Snapshots{store: store, locks: locks}
}

// lock acquires the mutexes for cols in the fixed domain.Collections order.
func (s *Snapshots) lock(cols []domain.Collection) func() {
	var held []*sync.Mutex
	for _, c := range domain.Collections {
		if slices.Contains(cols, c) {
			mu := s.locks[c]
			mu.Lock()
			held = append(held, mu)
		}
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// update runs fn with exclusive access to cols and commits what fn wrote.
// fn must only touch the collections listed in cols and may run more than
// once.
func (s *Snapshots) update(ctx context.Context, cols []domain.Collection, fn func(t *txn) error) error {
	unlock := s.lock(cols)
	defer unlock()

	for attempt := 1; ; attempt++ {
		t := &txn{ctx: ctx, store: s.store, allowed: cols, loaded: map[domain.Collection]domain.Snapshot{}, pending: map[domain.Collection]json.RawMessage{}}
		if err := fn(t); err != nil {
			return err
		}
		err := t.commit()
		if err == nil || !errors.Is(err, domain.ErrStaleWrite) || attempt == maxWriteAttempts {
			return err
		}
		for c := range t.pending {
			metrics.RecordStaleWriteRetry(string(c))
		}
		slog.Warn("stale snapshot, retrying", "collections", cols, "attempt", attempt, "error", err)
	}
}

// txn caches the snapshots read during one update cycle and buffers writes.
type txn struct {
	ctx     context.Context
	store   domain.RecordStore
	allowed []domain.Collection
	loaded  map[domain.Collection]domain.Snapshot
	pending map[domain.Collection]json.RawMessage
}

func (t *txn) snapshot(c domain.Collection) (domain.Snapshot, error) {
	if !slices.Contains(t.allowed, c) {
		return domain.Snapshot{}, fmt.Errorf("collection %s is not locked by this update", c)
	}
	if snap, ok := t.loaded[c]; ok {
		return snap, nil
	}
	snap, err := t.store.Load(t.ctx, c)
	if err != nil {
		return domain.Snapshot{}, err
	}
	t.loaded[c] = snap
	return snap, nil
}

// commit saves every staged collection as one unit.
func (t *txn) commit() error {
	var writes []domain.CollectionWrite
	for _, c := range domain.Collections {
		if data, ok := t.pending[c]; ok {
			writes = append(writes, domain.CollectionWrite{Collection: c, Data: data, ExpectedVersion: t.loaded[c].Version})
		}
	}
	if len(writes) == 0 {
		return nil
	}
	if err := t.store.SaveAll(t.ctx, writes); err != nil {
		return fmt.Errorf("save %d collections: %w", len(writes), err)
	}
	return nil
}

// read decodes collection c within t.
func read[T any](t *txn, c domain.Collection) ([]T, error) {
	snap, err := t.snapshot(c)
	if err != nil {
		return nil, err
	}
	return decode[T](c, snap.Data)
}

// write stages records as the next contents of collection c. The collection
// must have been read in the same cycle so its version is known.
func write[T any](t *txn, c domain.Collection, records []T) error {
	if _, ok := t.loaded[c]; !ok {
		if _, err := t.snapshot(c); err != nil {
			return err
		}
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	t.pending[c] = data
	return nil
}

// load reads collection c outside of an update cycle.
func load[T any](ctx context.Context, store domain.RecordStore, c domain.Collection) ([]T, error) {
	snap, err := store.Load(ctx, c)
	if err != nil {
		return nil, err
	}
	return decode[T](c, snap.Data)
}

func decode[T any](c domain.Collection, data json.RawMessage) ([]T, error) {
	records := []T{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}
