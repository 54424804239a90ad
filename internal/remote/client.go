// Package remote talks to the engine's HTTP API on behalf of the workbench.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/ratelimit"
)

const maxResponseBytes = 8 << 20

type Config struct {
	BaseURL           string
	Timeout           time.Duration // per request; 0 means no client timeout
	RequestsPerSecond float64       // 0 disables client-side limiting
}

// Client implements the workbench's remote operations over HTTP.
type Client struct {
	base    string
	hc      *http.Client
	limiter *ratelimit.Hosts
	log     *logging.Logger
}

func New(cfg Config, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: ratelimit.New(ratelimit.Limit{PerSecond: cfg.RequestsPerSecond, Burst: 1}),
		log:     log.With("component", "remote"),
	}
}

func (c *Client) Search(ctx context.Context, crit domain.SearchCriteria) ([]domain.JobRecord, error) {
	if crit.WorkTypes == nil {
		crit.WorkTypes = []string{}
	}
	var out []domain.JobRecord
	if err := c.do(ctx, http.MethodPost, "/api/jobs/search", crit, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.JobRecord{}
	}
	return out, nil
}

func (c *Client) ListBoards(ctx context.Context) ([]domain.Board, error) {
	var out []domain.Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateApplications(ctx context.Context, jobs []domain.JobRecord) ([]string, error) {
	req := struct {
		JobDataList []domain.JobRecord `json:"jobDataList"`
	}{JobDataList: jobs}

	var ids []string
	if err := c.do(ctx, http.MethodPost, "/api/applications", req, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

type errorEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
}

// do sends one JSON request. Every failure comes back as *domain.RemoteError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.WaitURL(ctx, c.base+path); err != nil {
		return &domain.RemoteError{Cause: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &domain.RemoteError{Cause: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &domain.RemoteError{Cause: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("request failed", "request_id", reqID, "method", method, "path", path, "err", err)
		return &domain.RemoteError{Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.RemoteError{Cause: fmt.Errorf("read response: %w", err)}
	}
	c.log.Debug("request", "request_id", reqID, "method", method, "path", path,
		"status", resp.StatusCode, "dur_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if json.Unmarshal(raw, &env) == nil && env.Error.Message != "" {
			return &domain.RemoteError{Message: env.Error.Message}
		}
		return &domain.RemoteError{Cause: fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.RemoteError{Cause: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// IsRemote reports whether err carries a remote failure.
func IsRemote(err error) bool {
	var re *domain.RemoteError
	return errors.As(err, &re)
}
