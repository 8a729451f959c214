package handler

import (
	"net/http"

	"github.com/msomdec/fitcoach/internal/service"
)

// UserHandler serves account administration.
type UserHandler struct {
	auth *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// HandleList returns every account.
// GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, "list users", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// HandleUpdate replaces an account's username and whichever of role,
// disabled flag and password are given.
// PUT /users/{id}
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return
	}
	var req userUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.UpdateUser(r.Context(), id, service.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Disabled: req.Disabled,
	})
	if err != nil {
		writeServiceError(w, r, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

// HandleDelete removes an account with its registrations and recommendation.
// DELETE /users/{id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid user ID.")
		return
	}
	if err := h.auth.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete user", err)
		return
	}
	writeMessage(w, "User deleted")
}
