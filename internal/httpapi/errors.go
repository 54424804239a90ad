package httpapi

import (
	"encoding/json"
	"net/http"

	"jobhunt-workbench/internal/logging"
)

// APIError is the body of every non-2xx JSON response. The workbench shows
// Message verbatim, so it never carries internal error text for 5xx.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// fallbackMessages are the user-facing texts for codes written without an
// explicit message.
var fallbackMessages = map[string]string{
	"invalid_json":       "Request body is not valid JSON.",
	"method_not_allowed": "Method not allowed.",
	"forbidden":          "Forbidden.",
	"internal_error":     "An unexpected error occurred",
	"search_failed":      "An unexpected error occurred",
	"no_jobs":            "Please select at least one job to create applications.",
	"create_failed":      "An error occurred while creating applications.",
	"list_failed":        "Could not load applications.",
	"boards_failed":      "Could not load job boards.",
	"seed_failed":        "Could not seed demo jobs.",
	"checkpoint_failed":  "Database checkpoint failed.",
	"db_unavailable":     "Database unavailable.",
	"ingest_disabled":    "Ingest is not configured.",
	"reload_failed":      "Config saved but reload failed.",
	"stream_unsupported": "Streaming unsupported.",
}

// ErrorMessage is the fallback message for code, or the status text when the
// code has none.
func ErrorMessage(code string, status int) string {
	if m, ok := fallbackMessages[code]; ok {
		return m
	}
	return http.StatusText(status)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope. An empty message uses ErrorMessage.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if message == "" {
		message = ErrorMessage(code, status)
	}
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

// WriteInternal logs err under the request id and answers 500 with the
// code's fallback message.
func WriteInternal(w http.ResponseWriter, r *http.Request, log *logging.Logger, code string, err error) {
	if log == nil {
		log = logging.Nop()
	}
	log.Error("request failed", "request_id", RequestIDFrom(r.Context()),
		"method", r.Method, "path", r.URL.Path, "code", code, "err", err)
	WriteError(w, r, http.StatusInternalServerError, code, "")
}

// WriteBadJSON answers 400 invalid_json with the decoder's reason.
func WriteBadJSON(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
}
