// Package observability exposes prometheus metrics and the health endpoint
// for the analysis service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExportsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversight_exports_parsed_total",
		Help: "The total number of chat exports parsed successfully",
	}, []string{"platform"})

	RowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversight_rows_parsed_total",
		Help: "The total number of canonical rows produced by the parsers",
	}, []string{"platform"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversight_parse_failures_total",
		Help: "The total number of rejected or failed exports",
	}, []string{"platform", "reason"})

	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conversight_parse_duration_seconds",
		Help:    "Duration of export parsing",
		Buckets: prometheus.DefBuckets,
	}, []string{"platform"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conversight_analysis_duration_seconds",
		Help:    "Duration of analysis requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conversight_sessions_active",
		Help: "Number of parsed sessions currently held in the cache",
	})

	SessionCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conversight_session_cache_lookups_total",
		Help: "Session cache lookups by outcome",
	}, []string{"outcome"})
)
