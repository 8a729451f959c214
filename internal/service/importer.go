package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/msomdec/fitcoach/internal/domain"
)

// Files written by the JSON-file deployment that preceded the record store.
var legacyFiles = map[domain.Collection]string{
	domain.CollectionUsers:           "users_db.json",
	domain.CollectionCoaches:         "coaches.json",
	domain.CollectionClasses:         "fitness_classes.json",
	domain.CollectionRegistrations:   "registrations.json",
	domain.CollectionRecommendations: "recommendations.json",
}

// legacyCoach accepts the hourly_rate_idr key used by older coach files.
type legacyCoach struct {
	domain.Coach
	HourlyRateIDR *int `json:"hourly_rate_idr,omitempty"`
}

// ImportLegacy copies the legacy JSON files found in dir into collections
// that are still empty. Missing files are skipped. It returns the number of
// collections imported.
func (s *Snapshots) ImportLegacy(ctx context.Context, dir string) (int, error) {
	imported := 0
	for _, c := range domain.Collections {
		var (
			ok  bool
			err error
		)
		switch c {
		case domain.CollectionUsers:
			ok, err = importFile[domain.User, domain.User](ctx, s, dir, c, nil)
		case domain.CollectionCoaches:
			ok, err = importFile(ctx, s, dir, c, func(in []legacyCoach) []domain.Coach {
				out := make([]domain.Coach, len(in))
				for i, lc := range in {
					out[i] = lc.Coach
					if lc.HourlyRateIDR != nil && lc.HourlyRate == 0 {
						out[i].HourlyRate = *lc.HourlyRateIDR
					}
				}
				return out
			})
		case domain.CollectionClasses:
			ok, err = importFile[domain.FitnessClass, domain.FitnessClass](ctx, s, dir, c, nil)
		case domain.CollectionRegistrations:
			ok, err = importFile[domain.Registration, domain.Registration](ctx, s, dir, c, nil)
		case domain.CollectionRecommendations:
			ok, err = importFile[domain.Recommendation, domain.Recommendation](ctx, s, dir, c, nil)
		}
		if err != nil {
			return imported, fmt.Errorf("import %s: %w", c, err)
		}
		if ok {
			imported++
		}
	}
	return imported, nil
}

// importFile decodes the legacy file for c as []In, converts it to []Out
// and saves it if the collection is empty. A nil convert requires In and
// Out to be the same type.
func importFile[In, Out any](ctx context.Context, s *Snapshots, dir string, c domain.Collection, convert func([]In) []Out) (bool, error) {
	path := filepath.Join(dir, legacyFiles[c])
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	var in []In
	if err := json.Unmarshal(raw, &in); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	var out []Out
	if convert != nil {
		out = convert(in)
	} else {
		// Same type by contract; round-trip through JSON to convert.
		if err := json.Unmarshal(raw, &out); err != nil {
			return false, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	done := false
	err = s.update(ctx, []domain.Collection{c}, func(t *txn) error {
		existing, err := read[Out](t, c)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			slog.Info("legacy import skipped, collection not empty", "collection", c, "records", len(existing))
			return nil
		}
		done = true
		return write(t, c, out)
	})
	if err != nil {
		return false, err
	}
	if done {
		slog.Info("legacy collection imported", "collection", c, "file", path, "records", len(out))
	}
	return done, nil
}
