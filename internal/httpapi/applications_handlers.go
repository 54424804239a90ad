package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/metrics"
	"jobhunt-workbench/internal/store"
)

type ApplicationsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
	Log *logging.Logger
}

func (h ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadJSON(w, r, err)
		return
	}
	for _, j := range req.JobDataList {
		if j.ID == "" {
			WriteError(w, r, http.StatusBadRequest, "invalid_job", "every job needs an id")
			return
		}
	}

	reqID := RequestIDFrom(r.Context())
	ids, err := store.CreateApplications(r.Context(), h.DB, req.JobDataList)
	if errors.Is(err, store.ErrNoJobs) {
		WriteError(w, r, http.StatusBadRequest, "no_jobs", "")
		return
	}
	if err != nil {
		WriteInternal(w, r, h.Log, "create_failed", err)
		return
	}

	metrics.ApplicationsCreated.Add(float64(len(ids)))
	h.Log.Info("applications created", "request_id", reqID, "count", len(ids))
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeApplicationsCreated, 1, map[string]any{"ids": ids}))
	writeJSON(w, ids)
}

func (h ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	apps, err := store.ListApplications(r.Context(), h.DB, limit)
	if err != nil {
		WriteInternal(w, r, h.Log, "list_failed", err)
		return
	}
	writeJSON(w, apps)
}
