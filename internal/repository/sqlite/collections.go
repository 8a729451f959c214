package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/metrics"
)

// CollectionStore implements domain.RecordStore. Each collection is one row
// holding a JSON array and a version counter used for compare-and-swap.
type CollectionStore struct {
	db *sql.DB
}

// NewCollectionStore creates a new SQLite-backed CollectionStore.
func NewCollectionStore(db *DB) *CollectionStore {
	return &CollectionStore{db: db.SqlDB}
}

var emptyCollection = json.RawMessage("[]")

func (s *CollectionStore) Load(ctx context.Context, c domain.Collection) (snap domain.Snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load", string(c), err, time.Since(start)) }()

	var data string
	err = s.db.QueryRowContext(ctx,
		`SELECT data, version FROM collections WHERE name = ?`, string(c),
	).Scan(&data, &snap.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Snapshot{Data: emptyCollection, Version: 0}, nil
		}
		return domain.Snapshot{}, fmt.Errorf("query collection %s: %w", c, err)
	}
	snap.Data = json.RawMessage(data)
	return snap, nil
}

// Save replaces the collection if its stored version still equals
// expectedVersion and returns the new version.
func (s *CollectionStore) Save(ctx context.Context, c domain.Collection, data json.RawMessage, expectedVersion int64) (int64, error) {
	err := s.SaveAll(ctx, []domain.CollectionWrite{{Collection: c, Data: data, ExpectedVersion: expectedVersion}})
	if err != nil {
		return 0, err
	}
	return expectedVersion + 1, nil
}

// SaveAll applies writes in one transaction. If any collection has moved
// past its expected version the transaction is rolled back and nothing is
// stored.
func (s *CollectionStore) SaveAll(ctx context.Context, writes []domain.CollectionWrite) (err error) {
	start := time.Now()
	defer func() {
		for _, w := range writes {
			metrics.RecordStoreOperation("save", string(w.Collection), err, time.Since(start))
		}
	}()

	for _, w := range writes {
		if !json.Valid(w.Data) {
			return fmt.Errorf("%w: collection %s is not valid JSON", domain.ErrInvalidInput, w.Collection)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, w := range writes {
		if err := saveTx(ctx, tx, w, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit collections: %w", err)
	}
	return nil
}

func saveTx(ctx context.Context, tx *sql.Tx, w domain.CollectionWrite, now time.Time) error {
	var (
		result sql.Result
		err    error
	)
	if w.ExpectedVersion == 0 {
		result, err = tx.ExecContext(ctx,
			`INSERT INTO collections (name, data, version, updated_at) VALUES (?, ?, 1, ?)
			 ON CONFLICT(name) DO UPDATE SET data = excluded.data, version = collections.version + 1, updated_at = excluded.updated_at
			 WHERE collections.version = 0`,
			string(w.Collection), string(w.Data), now,
		)
	} else {
		result, err = tx.ExecContext(ctx,
			`UPDATE collections SET data = ?, version = version + 1, updated_at = ?
			 WHERE name = ? AND version = ?`,
			string(w.Data), now, string(w.Collection), w.ExpectedVersion,
		)
	}
	if err != nil {
		return fmt.Errorf("save collection %s: %w", w.Collection, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("collection %s at version %d: %w", w.Collection, w.ExpectedVersion, domain.ErrStaleWrite)
	}
	return nil
}
