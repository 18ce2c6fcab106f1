package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Success labels for metrics
const (
	SuccessTrue  = "true"
	SuccessFalse = "false"
)

// Fallback tier labels. The chat handler degrades gracefully at three points
// and each activation is counted even though the caller sees success.
const (
	TierStore  = "store"  // primary append failed, request switched to memory
	TierReply  = "reply"  // provider call failed, canned reply selected
	TierResave = "resave" // final primary save failed, best-effort memory write
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_chat_requests_total",
		Help: "Total number of chat send requests",
	}, []string{"success"})

	ChatRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aura_chat_request_duration_seconds",
		Help:    "Duration of chat send requests in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"success"})

	ChatFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_chat_fallbacks_total",
		Help: "Total number of fallback tier activations in the chat handler",
	}, []string{"tier"})

	ProviderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_provider_failures_total",
		Help: "Total number of remote provider call failures",
	}, []string{"provider"})

	DocumentUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_document_uploads_total",
		Help: "Total number of document uploads",
	}, []string{"file_type"})

	DocumentVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aura_document_verifications_total",
		Help: "Total number of document verification runs",
	}, []string{"outcome"})

	MemoryThreads = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aura_memory_threads",
		Help: "Number of user identifiers currently held by the in-memory fallback store",
	})
)
