// Package metrics holds the Prometheus collectors shared by the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobhunt_http_requests_total",
		Help: "HTTP requests handled, by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobhunt_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Searches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobhunt_searches_total",
		Help: "The total number of processed job searches",
	})

	SearchResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jobhunt_search_results",
		Help:    "Number of records returned per search",
		Buckets: []float64{0, 1, 10, 50, 100, 250, 500, 1000},
	})

	ApplicationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobhunt_applications_created_total",
		Help: "The total number of applications created",
	})

	JobsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobhunt_jobs_ingested_total",
		Help: "New jobs stored by ingest, by source",
	}, []string{"source"})

	LeadsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobhunt_leads_skipped_total",
		Help: "Leads dropped by the ingest filter, by reason",
	}, []string{"reason"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobhunt_fetch_duration_seconds",
		Help:    "Time spent in one fetcher run",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
	}, []string{"source"})

	IngestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobhunt_ingest_runs_total",
		Help: "Ingest passes, by outcome",
	}, []string{"outcome"})

	SSEClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "jobhunt_sse_clients",
		Help: "Connected event stream clients",
	})
)
