package httpapi

import (
	"database/sql"
	"net"
	"net/http"

	"jobhunt-workbench/internal/logging"
)

type DBHandler struct {
	DB  *sql.DB
	Log *logging.Logger
}

// Checkpoint flushes the WAL. Only local callers are allowed.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if host != "127.0.0.1" && host != "::1" && host != "localhost" {
		WriteError(w, r, http.StatusForbidden, "forbidden", "")
		return
	}

	if _, err := h.DB.ExecContext(r.Context(), `PRAGMA wal_checkpoint(FULL);`); err != nil {
		WriteInternal(w, r, h.Log, "checkpoint_failed", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
