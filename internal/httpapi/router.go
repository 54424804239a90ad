package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMux registers every route. Handler wraps it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	log := d.logger()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, Log: log, Config: d.config}
	mux.HandleFunc("/api/jobs/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Search,
	}))
	mux.HandleFunc("/seed", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: jh.Seed,
	}))

	bh := BoardsHandler{DB: d.DB, Log: log, Config: d.config}
	mux.HandleFunc("/api/boards", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: bh.List,
	}))

	ah := ApplicationsHandler{DB: d.DB, Hub: d.Hub, Log: log}
	mux.HandleFunc("/api/applications", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  ah.List,
		http.MethodPost: ah.Create,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Log:         log,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Ingest
	ih := IngestHandler{Runner: d.Ingest, Config: d.config, Ctx: d.baseCtx()}
	mux.HandleFunc("/ingest/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))
	mux.HandleFunc("/ingest/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ih.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	dh := DBHandler{DB: d.DB, Log: log}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Checkpoint,
	}))

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Handler is the full engine API with middleware applied.
func Handler(d Deps) http.Handler {
	log := d.logger()
	return Chain(NewMux(d), RequestID, Recover(log), AccessLog(log), Cors)
}
