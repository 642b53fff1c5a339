package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/handmouse/internal/app"
)

// Runtime is the part of the frame loop the control endpoints touch.
type Runtime interface {
	Status() app.Status
	SetEnabled(enabled bool)
	IsEnabled() bool
}

// StatusHandler serves GET /api/status.
type StatusHandler struct {
	runtime Runtime
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(rt Runtime) *StatusHandler {
	return &StatusHandler{runtime: rt}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.runtime.Status())
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

type enabledResponse struct {
	Enabled bool `json:"enabled"`
}

// EnabledHandler reads and toggles pointer control at /api/enabled.
type EnabledHandler struct {
	runtime Runtime
}

// NewEnabledHandler creates a new EnabledHandler.
func NewEnabledHandler(rt Runtime) *EnabledHandler {
	return &EnabledHandler{runtime: rt}
}

func (h *EnabledHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, enabledResponse{Enabled: h.runtime.IsEnabled()})
	case http.MethodPost:
		var req enabledRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Enabled == nil {
			writeError(w, http.StatusBadRequest, "enabled is required")
			return
		}

		h.runtime.SetEnabled(*req.Enabled)
		writeJSON(w, http.StatusOK, enabledResponse{Enabled: h.runtime.IsEnabled()})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
