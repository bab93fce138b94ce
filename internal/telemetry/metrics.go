package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters and gauges an encoding or
// playback session can report against. It is safe to leave nil on any
// Pipeline that doesn't need instrumentation — every recording method
// on the pipelines guards against a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	framesEncodedTotal *prometheus.CounterVec // by compression_type
	framesDecodedTotal *prometheus.CounterVec // by compression_type
	cacheHitsTotal     prometheus.Counter
	cacheMissesTotal   prometheus.Counter
	queueDepth         prometheus.Gauge
	pipelineErrors     *prometheus.CounterVec // by stage
}

// New creates and registers GitFlix's Prometheus metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	framesEncodedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gitflix_frames_encoded_total",
		Help: "Total number of frames written to the chain, by compression type.",
	}, []string{"compression_type"})
	framesDecodedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gitflix_frames_decoded_total",
		Help: "Total number of frames decoded during playback, by compression type.",
	}, []string{"compression_type"})
	cacheHitsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitflix_blob_cache_hits_total",
		Help: "Total number of BlobCache lookups that hit.",
	})
	cacheMissesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gitflix_blob_cache_misses_total",
		Help: "Total number of BlobCache lookups that missed.",
	})
	queueDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gitflix_frame_queue_depth",
		Help: "Current number of decoded frames buffered in the FrameQueue.",
	})
	pipelineErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gitflix_pipeline_errors_total",
		Help: "Total number of fatal pipeline errors, by stage.",
	}, []string{"stage"})

	registry.MustRegister(
		framesEncodedTotal,
		framesDecodedTotal,
		cacheHitsTotal,
		cacheMissesTotal,
		queueDepth,
		pipelineErrors,
	)

	return &Metrics{
		registry:           registry,
		framesEncodedTotal: framesEncodedTotal,
		framesDecodedTotal: framesDecodedTotal,
		cacheHitsTotal:     cacheHitsTotal,
		cacheMissesTotal:   cacheMissesTotal,
		queueDepth:         queueDepth,
		pipelineErrors:     pipelineErrors,
	}
}

// RecordFrameEncoded increments the encoded-frame counter for mode
// ("raw" or "delta"). Safe to call on a nil *Metrics.
func (m *Metrics) RecordFrameEncoded(mode string) {
	if m == nil {
		return
	}
	m.framesEncodedTotal.WithLabelValues(mode).Inc()
}

// RecordFrameDecoded increments the decoded-frame counter for mode.
// Safe to call on a nil *Metrics.
func (m *Metrics) RecordFrameDecoded(mode string) {
	if m == nil {
		return
	}
	m.framesDecodedTotal.WithLabelValues(mode).Inc()
}

// RecordCacheLookup increments the hit or miss counter. Safe to call on
// a nil *Metrics.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHitsTotal.Inc()
		return
	}
	m.cacheMissesTotal.Inc()
}

// SetQueueDepth reports the FrameQueue's current occupancy. Safe to call
// on a nil *Metrics.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// RecordPipelineError increments the fatal-error counter for stage
// ("encode", "decode", "present"). Safe to call on a nil *Metrics.
func (m *Metrics) RecordPipelineError(stage string) {
	if m == nil {
		return
	}
	m.pipelineErrors.WithLabelValues(stage).Inc()
}

// Handler returns an http.Handler serving the Prometheus exposition
// format for m's registry, suitable for mounting at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
