package service

import (
	"context"
	"fmt"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/engine"
	"github.com/msomdec/fitcoach/internal/metrics"
	"github.com/msomdec/fitcoach/internal/recommend"
)

// RecommendationService computes, stores and removes class recommendations.
type RecommendationService struct {
	snaps       *Snapshots
	recommender *recommend.Recommender
}

// NewRecommendationService creates a new RecommendationService.
func NewRecommendationService(snaps *Snapshots, recommender *recommend.Recommender) *RecommendationService {
	return &RecommendationService{snaps: snaps, recommender: recommender}
}

// Get returns the stored recommendation for userID.
func (s *RecommendationService) Get(ctx context.Context, userID int64) (*domain.Recommendation, error) {
	recs, err := load[domain.Recommendation](ctx, s.snaps.store, domain.CollectionRecommendations)
	if err != nil {
		return nil, err
	}
	rec, err := engine.RecommendationFor(userID, recs)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ComputeAndStore computes a recommendation from profile against the
// current class inventory and stores it, replacing any previous one.
func (s *RecommendationService) ComputeAndStore(ctx context.Context, userID int64, profile domain.HealthProfile) (*domain.Recommendation, error) {
	var stored domain.Recommendation
	cols := []domain.Collection{domain.CollectionUsers, domain.CollectionClasses, domain.CollectionRecommendations}
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
		recs, err := read[domain.Recommendation](t, domain.CollectionRecommendations)
		if err != nil {
			return err
		}
		rec, err := s.recommender.Recommend(userID, profile, classes)
		if err != nil {
			return err
		}
		stored = rec
		return write(t, domain.CollectionRecommendations, engine.PutRecommendation(rec, recs))
	})
	if err != nil {
		return nil, fmt.Errorf("compute recommendation: %w", err)
	}
	metrics.RecordRecommendation(stored.ClassRecommendation.ClassType)
	return &stored, nil
}

// Delete removes the stored recommendation for userID.
func (s *RecommendationService) Delete(ctx context.Context, userID int64) error {
	err := s.snaps.update(ctx, []domain.Collection{domain.CollectionRecommendations}, func(t *txn) error {
		recs, err := read[domain.Recommendation](t, domain.CollectionRecommendations)
		if err != nil {
			return err
		}
		next, err := engine.DeleteRecommendation(userID, recs)
		if err != nil {
			return err
		}
		return write(t, domain.CollectionRecommendations, next)
	})
	if err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}
