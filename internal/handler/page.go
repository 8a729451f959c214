package handler

import (
	"log/slog"
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/fitcoach/internal/service"
	"github.com/msomdec/fitcoach/internal/view"
)

// PageHandler serves the browser schedule page.
type PageHandler struct {
	schedule *service.ScheduleService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(schedule *service.ScheduleService) *PageHandler {
	return &PageHandler{schedule: schedule}
}

func (h *PageHandler) rows(r *http.Request) ([]view.ClassRow, error) {
	classes, err := h.schedule.ListClasses(r.Context())
	if err != nil {
		return nil, err
	}
	coaches, err := h.schedule.ListCoaches(r.Context())
	if err != nil {
		return nil, err
	}
	return view.ClassRows(classes, coaches), nil
}

// HandleSchedule renders the schedule page.
// GET /schedule
func (h *PageHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	rows, err := h.rows(r)
	if err != nil {
		slog.Error("load schedule page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	username := ""
	if user := UserFromContext(r.Context()); user != nil {
		username = user.Username
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.SchedulePage(username, rows).Render(r.Context(), w); err != nil {
		slog.Error("render schedule page", "error", err)
	}
}

// HandleClassTable replaces the class table via SSE, filtered by the
// optional type query parameter.
// GET /schedule/classes?type=Yoga
func (h *PageHandler) HandleClassTable(w http.ResponseWriter, r *http.Request) {
	rows, err := h.rows(r)
	if err != nil {
		slog.Error("load class table", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	rows = view.FilterRows(rows, r.URL.Query().Get("type"))

	sse := datastar.NewSSE(w, r)
	// The fragment carries the table's id, so the default morph replaces it.
	if err := sse.PatchElementTempl(view.ClassTable(rows)); err != nil {
		slog.Error("patch class table", "error", err)
	}
}
