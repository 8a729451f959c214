package domain

import (
	"context"
	"encoding/json"
)

// Collection names one of the persisted record sets.
type Collection string

const (
	CollectionUsers           Collection = "users"
	CollectionCoaches         Collection = "coaches"
	CollectionClasses         Collection = "fitness_classes"
	CollectionRegistrations   Collection = "registrations"
	CollectionRecommendations Collection = "recommendations"
)

// Collections lists every collection in lock order.
var Collections = []Collection{
	CollectionUsers,
	CollectionCoaches,
	CollectionClasses,
	CollectionRegistrations,
	CollectionRecommendations,
}

// Snapshot is the full contents of one collection at a given version.
// Data is a JSON array of flat records.
type Snapshot struct {
	Data    json.RawMessage
	Version int64
}

// CollectionWrite is one collection's next contents, valid only if the
// stored version still equals ExpectedVersion.
type CollectionWrite struct {
	Collection      Collection
	Data            json.RawMessage
	ExpectedVersion int64
}

// RecordStore persists whole collections. Saves are compare-and-swap: they
// fail with ErrStaleWrite unless the stored version still equals the
// expected one. SaveAll applies every write or none of them. A collection
// that was never saved loads as an empty array at version 0.
type RecordStore interface {
	Load(ctx context.Context, c Collection) (Snapshot, error)
	Save(ctx context.Context, c Collection, data json.RawMessage, expectedVersion int64) (int64, error)
	SaveAll(ctx context.Context, writes []CollectionWrite) error
}
