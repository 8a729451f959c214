package handler

import (
	"net/http"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/service"
)

// RecommendationHandler serves per-user class recommendations. Members may
// only reach their own; admins may reach anyone's.
type RecommendationHandler struct {
	recs *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recs *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recs: recs}
}

func (h *RecommendationHandler) targetUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return 0, false
	}
	return userID, requireSelf(w, r, userID)
}

// GET /recommendations/{user_id}
func (h *RecommendationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.targetUser(w, r)
	if !ok {
		return
	}
	rec, err := h.recs.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "get recommendation", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleCompute computes a recommendation from a health profile and stores
// it, replacing the user's previous one.
// POST /recommendations/{user_id}
// Request: {"weight":60,"height":160,"age":25,"gender":"female","goal":"loss"}
func (h *RecommendationHandler) HandleCompute(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.targetUser(w, r)
	if !ok {
		return
	}
	var profile domain.HealthProfile
	if err := readJSON(w, r, &profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	rec, err := h.recs.ComputeAndStore(r.Context(), userID, profile)
	if err != nil {
		writeServiceError(w, r, "compute recommendation", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// DELETE /recommendations/{user_id}
func (h *RecommendationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.targetUser(w, r)
	if !ok {
		return
	}
	if err := h.recs.Delete(r.Context(), userID); err != nil {
		writeServiceError(w, r, "delete recommendation", err)
		return
	}
	writeMessage(w, "Recommendation deleted")
}
