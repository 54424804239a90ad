// Package ratelimit paces outbound requests per host.
package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limit is a token bucket. PerSecond <= 0 means unlimited.
type Limit struct {
	PerSecond float64
	Burst     int
}

func (l Limit) limiter() *rate.Limiter {
	b := l.Burst
	if b < 1 {
		b = 1
	}
	if l.PerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, b)
	}
	return rate.NewLimiter(rate.Limit(l.PerSecond), b)
}

// Hosts keeps one bucket per hostname (api.lever.co, boards-api.greenhouse.io,
// the local engine). Hosts without an override share the default Limit but
// not its bucket.
type Hosts struct {
	mu        sync.Mutex
	def       Limit
	overrides map[string]Limit
	m         map[string]*rate.Limiter
}

func New(def Limit) *Hosts {
	return &Hosts{
		def:       def,
		overrides: make(map[string]Limit),
		m:         make(map[string]*rate.Limiter),
	}
}

// Set overrides the limit for host. An existing bucket is replaced.
func (h *Hosts) Set(host string, l Limit) *Hosts {
	host = normHost(host)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.overrides[host] = l
	delete(h.m, host)
	return h
}

// LimitFor reports the limit that applies to host.
func (h *Hosts) LimitFor(host string) Limit {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.overrides[normHost(host)]; ok {
		return l
	}
	return h.def
}

func (h *Hosts) limiterFor(host string) *rate.Limiter {
	host = normHost(host)
	h.mu.Lock()
	defer h.mu.Unlock()

	if lim, ok := h.m[host]; ok {
		return lim
	}
	l, ok := h.overrides[host]
	if !ok {
		l = h.def
	}
	lim := l.limiter()
	h.m[host] = lim
	return lim
}

// Wait blocks until host may be called or ctx ends.
func (h *Hosts) Wait(ctx context.Context, host string) error {
	return h.limiterFor(host).Wait(ctx)
}

// WaitURL is Wait keyed by the host of raw. Unparseable URLs share one bucket.
func (h *Hosts) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return h.Wait(ctx, "_")
	}
	return h.Wait(ctx, u.Hostname())
}

func normHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}
