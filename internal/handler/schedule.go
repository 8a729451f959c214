package handler

import (
	"net/http"

	"github.com/msomdec/fitcoach/internal/domain"
	"github.com/msomdec/fitcoach/internal/service"
)

// ScheduleHandler serves coaches, classes and registrations.
type ScheduleHandler struct {
	schedule *service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedule *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

// GET /coaches
func (h *ScheduleHandler) HandleListCoaches(w http.ResponseWriter, r *http.Request) {
	coaches, err := h.schedule.ListCoaches(r.Context())
	if err != nil {
		writeServiceError(w, r, "list coaches", err)
		return
	}
	writeJSON(w, http.StatusOK, coaches)
}

// POST /coaches
func (h *ScheduleHandler) HandleCreateCoach(w http.ResponseWriter, r *http.Request) {
	var coach domain.Coach
	if err := readJSON(w, r, &coach); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	created, err := h.schedule.CreateCoach(r.Context(), coach)
	if err != nil {
		writeServiceError(w, r, "create coach", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PUT /coaches/{id}
func (h *ScheduleHandler) HandleUpdateCoach(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid coach ID.")
		return
	}
	var coach domain.Coach
	if err := readJSON(w, r, &coach); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	updated, err := h.schedule.UpdateCoach(r.Context(), id, coach)
	if err != nil {
		writeServiceError(w, r, "update coach", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DELETE /coaches/{id}
func (h *ScheduleHandler) HandleDeleteCoach(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid coach ID.")
		return
	}
	if err := h.schedule.DeleteCoach(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete coach", err)
		return
	}
	writeMessage(w, "Coach deleted")
}

// GET /classes
func (h *ScheduleHandler) HandleListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.schedule.ListClasses(r.Context())
	if err != nil {
		writeServiceError(w, r, "list classes", err)
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// HandleCreateClass adds a class. Any class_id in the body is ignored; the
// stored class gets the next free id.
// POST /classes
func (h *ScheduleHandler) HandleCreateClass(w http.ResponseWriter, r *http.Request) {
	var class domain.FitnessClass
	if err := readJSON(w, r, &class); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	created, err := h.schedule.CreateClass(r.Context(), class)
	if err != nil {
		writeServiceError(w, r, "create class", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// PUT /classes/{id}
func (h *ScheduleHandler) HandleUpdateClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid class ID.")
		return
	}
	var class domain.FitnessClass
	if err := readJSON(w, r, &class); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	updated, err := h.schedule.UpdateClass(r.Context(), id, class)
	if err != nil {
		writeServiceError(w, r, "update class", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteClass removes a class and every registration for it.
// DELETE /classes/{id}
func (h *ScheduleHandler) HandleDeleteClass(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid class ID.")
		return
	}
	if err := h.schedule.DeleteClass(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete class", err)
		return
	}
	writeMessage(w, "Class deleted")
}

// HandleRegister signs the caller, or the user named in the body when the
// caller is an admin, up for a class.
// POST /register
// Request:  {"class_id":3} or {"user_id":2,"class_id":3}
func (h *ScheduleHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	var req registrationRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID == 0 {
		req.UserID = p.UserID
	}
	if !requireSelf(w, r, req.UserID) {
		return
	}
	if req.ClassID <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "class_id is required.")
		return
	}

	reg, err := h.schedule.RegisterForClass(r.Context(), req.UserID, req.ClassID)
	if err != nil {
		writeServiceError(w, r, "register for class", err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// HandleCancel removes the caller's registration for a class. Cancelling a
// registration that does not exist succeeds.
// DELETE /cancel_registration/{class_id}
func (h *ScheduleHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	classID, ok := pathID(r, "class_id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid class ID.")
		return
	}
	if err := h.schedule.CancelRegistration(r.Context(), p.UserID, classID); err != nil {
		writeServiceError(w, r, "cancel registration", err)
		return
	}
	writeMessage(w, "Registration cancelled successfully")
}

// GET /registrations
func (h *ScheduleHandler) HandleMyRegistrations(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	regs, err := h.schedule.ListRegistrationsFor(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, r, "list registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// GET /all-registrations
func (h *ScheduleHandler) HandleAllRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.schedule.ListAllRegistrations(r.Context())
	if err != nil {
		writeServiceError(w, r, "list all registrations", err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
