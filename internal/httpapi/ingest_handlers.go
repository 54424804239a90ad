package httpapi

import (
	"context"
	"net/http"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/poll"
)

type IngestHandler struct {
	Runner *poll.Runner
	Config func() config.Config
	Ctx    context.Context
}

func (h IngestHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.Runner == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "ingest_disabled", "")
		return
	}
	writeJSON(w, h.Runner.Status())
}

func (h IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Runner == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "ingest_disabled", "")
		return
	}
	// the pass outlives the request but not the engine
	if !h.Runner.Trigger(h.Ctx, h.Config()) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
