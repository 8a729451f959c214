package engine

import (
	"fmt"
	"slices"

	"github.com/msomdec/fitcoach/internal/domain"
)

// PutRecommendation stores rec, replacing any earlier recommendation for the
// same user.
func PutRecommendation(rec domain.Recommendation, recs []domain.Recommendation) []domain.Recommendation {
	next := slices.Clone(recs)
	if i := findRecommendation(next, rec.UserID); i >= 0 {
		next[i] = rec
		return next
	}
	return append(next, rec)
}

// RecommendationFor returns the stored recommendation for userID.
func RecommendationFor(userID int64, recs []domain.Recommendation) (domain.Recommendation, error) {
	i := findRecommendation(recs, userID)
	if i < 0 {
		return domain.Recommendation{}, fmt.Errorf("recommendation for user %d: %w", userID, domain.ErrNotFound)
	}
	return recs[i], nil
}

// DeleteRecommendation removes the recommendation for userID.
func DeleteRecommendation(userID int64, recs []domain.Recommendation) ([]domain.Recommendation, error) {
	if findRecommendation(recs, userID) < 0 {
		return recs, fmt.Errorf("recommendation for user %d: %w", userID, domain.ErrNotFound)
	}
	return slices.DeleteFunc(slices.Clone(recs), func(r domain.Recommendation) bool { return r.UserID == userID }), nil
}

func findRecommendation(recs []domain.Recommendation, userID int64) int {
	return slices.IndexFunc(recs, func(r domain.Recommendation) bool { return r.UserID == userID })
}
