package httpapi

import (
	"database/sql"
	"net/http"
	"strings"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/metrics"
	"jobhunt-workbench/internal/store"
)

type JobsHandler struct {
	DB     *sql.DB
	Hub    *events.Hub
	Log    *logging.Logger
	Config func() config.Config
}

func (h JobsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var c domain.SearchCriteria
	if err := decodeJSON(r, &c); err != nil {
		WriteBadJSON(w, r, err)
		return
	}
	c.Keywords = strings.TrimSpace(c.Keywords)
	c.Location = strings.TrimSpace(c.Location)

	jobs, err := store.SearchJobs(r.Context(), h.DB, c, h.Config().Engine.SearchLimit)
	if err != nil {
		WriteInternal(w, r, h.Log, "search_failed", err)
		return
	}
	metrics.Searches.Inc()
	metrics.SearchResults.Observe(float64(len(jobs)))
	h.Log.Debug("search", "keywords", c.Keywords, "location", c.Location, "work_types", c.WorkTypes, "results", len(jobs))
	writeJSON(w, jobs)
}

func (h JobsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	added, err := store.SeedJobs(r.Context(), h.DB)
	if err != nil {
		WriteInternal(w, r, h.Log, "seed_failed", err)
		return
	}
	reqID := RequestIDFrom(r.Context())
	if added > 0 {
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobCreated, 1, map[string]any{"added": added}))
	}
	writeJSON(w, map[string]any{"ok": true, "added": added})
}
