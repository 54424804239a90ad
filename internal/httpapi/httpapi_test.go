package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/poll"
	"jobhunt-workbench/internal/store"
)

type testEnv struct {
	db      *sql.DB
	hub     *events.Hub
	cfgVal  *atomic.Value
	cfgPath string
	srv     http.Handler
	ingests atomic.Int32

	cancelBase context.CancelFunc
	ingestCtx  atomic.Value // context.Context of the last pass
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	d, err := store.Open(filepath.Join(dir, "jobhunt.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	require.NoError(t, store.Migrate(d.Pool))

	cfg := config.Default()
	cfg.Sources.Lever.Enabled = true
	cfg.Sources.Lever.Companies = []config.Company{{Slug: "datacorp", Name: "DataCorp"}}
	cfg.Sources.Greenhouse.Enabled = false

	env := &testEnv{
		db:      d.Pool,
		hub:     events.NewHub(),
		cfgVal:  &atomic.Value{},
		cfgPath: filepath.Join(dir, "config.yml"),
	}
	env.cfgVal.Store(cfg)

	base, cancel := context.WithCancel(context.Background())
	env.cancelBase = cancel
	t.Cleanup(cancel)

	runner := &poll.Runner{
		DB:  d.Pool,
		Hub: env.hub,
		Log: logging.Nop(),
		Ingest: func(ctx context.Context, _ *sql.DB, _ config.Config, _ func()) (int, error) {
			env.ingestCtx.Store(ctx)
			env.ingests.Add(1)
			return 0, nil
		},
	}

	env.srv = Handler(Deps{
		DB:          d.Pool,
		Hub:         env.hub,
		Log:         logging.Nop(),
		CfgVal:      env.cfgVal,
		UserCfgPath: env.cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(env.cfgPath) },
		Ingest:      runner,
		BaseCtx:     base,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "127.0.0.1:5555"
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	_, err := store.SeedJobs(context.Background(), e.db)
	require.NoError(t, err)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var e APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestSearchFiltersByCriteria(t *testing.T) {
	env := newEnv(t)
	env.seed(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/search", `{"keywords":"engineer","location":"toronto","workTypes":["remote"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []domain.JobRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		assert.Contains(t, strings.ToLower(j.Title), "engineer")
		assert.Contains(t, strings.ToLower(j.Location), "toronto")
		assert.Equal(t, domain.WorkTypeRemote, j.WorkType)
	}
}

func TestSearchEmptyBodyReturnsEverything(t *testing.T) {
	env := newEnv(t)
	env.seed(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/search", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []domain.JobRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 12)
}

func TestSearchNoMatchesIsEmptyArray(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/search", `{"keywords":"zzz"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSearchBadJSONUsesErrorEnvelope(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/jobs/search", `{"keywords":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	e := decodeError(t, rec)
	assert.Equal(t, "invalid_json", e.Error.Code)
	assert.NotEmpty(t, e.Error.RequestID)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), e.Error.RequestID)
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/api/jobs/search", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decodeError(t, rec).Error.Code)
}

func TestCreateApplications(t *testing.T) {
	env := newEnv(t)
	sub := env.hub.Subscribe()
	defer env.hub.Unsubscribe(sub)

	body := `{"jobDataList":[{"id":"1","title":"Go Dev","company":"Acme"},{"id":"2","title":"SRE","company":"Acme"}]}`
	rec := env.do(t, http.MethodPost, "/api/applications", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var ids []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ids))
	assert.Len(t, ids, 2)

	select {
	case msg := <-sub:
		assert.Contains(t, msg, events.TypeApplicationsCreated)
	default:
		t.Fatal("expected an applications_created event")
	}

	rec = env.do(t, http.MethodGet, "/api/applications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var apps []domain.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)
}

func TestCreateApplicationsRejectsEmptyList(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/applications", `{"jobDataList":[]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	e := decodeError(t, rec)
	assert.Equal(t, "no_jobs", e.Error.Code)
	assert.Equal(t, "Please select at least one job to create applications.", e.Error.Message)
}

func TestCreateApplicationsRejectsMissingID(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/applications", `{"jobDataList":[{"title":"x"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_job", decodeError(t, rec).Error.Code)
}

func TestBoardsListEnabledCompanies(t *testing.T) {
	env := newEnv(t)
	_, err := store.InsertJobIgnore(context.Background(), env.db, store.JobInsert{
		Company: "DataCorp", Title: "Go Dev", Source: "Lever", URL: "https://x", SourceID: "lever:1",
	})
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/boards", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var boards []domain.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &boards))
	require.Len(t, boards, 1)
	assert.Equal(t, "DataCorp", boards[0].Label)
	assert.Equal(t, "lever:datacorp", boards[0].Value)
	assert.Equal(t, "Lever · 1 jobs", boards[0].Description)
}

func TestSeedPublishesEvent(t *testing.T) {
	env := newEnv(t)
	sub := env.hub.Subscribe()
	defer env.hub.Unsubscribe(sub)

	rec := env.do(t, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"added":12}`, rec.Body.String())

	select {
	case msg := <-sub:
		assert.Contains(t, msg, events.TypeJobCreated)
	default:
		t.Fatal("expected a job_created event")
	}

	rec = env.do(t, http.MethodPost, "/seed", "")
	assert.JSONEq(t, `{"ok":true,"added":0}`, rec.Body.String())
}

func TestConfigPutValidates(t *testing.T) {
	env := newEnv(t)

	bad := config.Default()
	bad.App.Port = 0
	b, _ := json.Marshal(bad)
	rec := env.do(t, http.MethodPut, "/config", string(b))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	good := config.Default()
	good.Engine.SearchLimit = 50
	b, _ = json.Marshal(good)
	rec = env.do(t, http.MethodPut, "/config", string(b))
	require.Equal(t, http.StatusOK, rec.Code)

	cur := env.cfgVal.Load().(config.Config)
	assert.Equal(t, 50, cur.Engine.SearchLimit)
	assert.FileExists(t, env.cfgPath)
}

func TestConfigPutRejectsUnknownFields(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPut, "/config", `{"nope":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_json", decodeError(t, rec).Error.Code)
}

func TestIngestStatusAndRun(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/ingest/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/ingest/run", "")
	assert.Contains(t, []int{http.StatusAccepted, http.StatusOK}, rec.Code)
	assert.Eventually(t, func() bool { return env.ingests.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestIngestRunStopsWithEngine(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/ingest/run", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Eventually(t, func() bool { return env.ingests.Load() == 1 }, time.Second, 10*time.Millisecond)

	ctx, ok := env.ingestCtx.Load().(context.Context)
	require.True(t, ok)
	assert.NoError(t, ctx.Err(), "request completion must not cancel the pass")

	env.cancelBase()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestHealth(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestCheckpointRejectsRemoteCallers(t *testing.T) {
	env := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/db/checkpoint", nil)
	req.RemoteAddr = "10.0.0.5:4000"
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/db/checkpoint", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newEnv(t)
	env.do(t, http.MethodGet, "/health", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobhunt_http_requests_total")
}

func TestInternalErrorsUseFallbackMessages(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, env.db.Close())

	tests := []struct {
		method, path, body string
		code, message      string
	}{
		{http.MethodPost, "/api/jobs/search", `{}`, "search_failed", "An unexpected error occurred"},
		{http.MethodGet, "/api/boards", "", "boards_failed", "Could not load job boards."},
		{http.MethodPost, "/api/applications", `{"jobDataList":[{"id":"1"}]}`, "create_failed", "An error occurred while creating applications."},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
			e := decodeError(t, rec)
			assert.Equal(t, tt.code, e.Error.Code)
			assert.Equal(t, tt.message, e.Error.Message)
			assert.NotEmpty(t, e.Error.RequestID)
			assert.NotContains(t, rec.Body.String(), "sql:")
		})
	}
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "Please select at least one job to create applications.", ErrorMessage("no_jobs", http.StatusBadRequest))
	assert.Equal(t, "Too Many Requests", ErrorMessage("unknown_code", http.StatusTooManyRequests))
}
