package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups all Prometheus instruments used by the client.
type Metrics struct {
	Submits             *prometheus.CounterVec
	ChatLatency         prometheus.Histogram
	RecognitionSessions prometheus.Counter
	SynthesisUtterances prometheus.Counter
	SynthesisErrors     prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Submits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submits_total",
			Help:      "Chat submissions by effective language and outcome.",
		}, []string{"language", "outcome"}),
		ChatLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_latency_ms",
			Help:      "Round-trip latency of chat requests in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		}),
		RecognitionSessions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recognition_sessions_total",
			Help:      "Speech recognition sessions started.",
		}),
		SynthesisUtterances: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_utterances_total",
			Help:      "Speech synthesis utterances started.",
		}),
		SynthesisErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_errors_total",
			Help:      "Speech synthesis failures (non-fatal).",
		}),
	}
}

func (m *Metrics) ObserveChatLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.ChatLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) CountSubmit(language, outcome string) {
	if m == nil {
		return
	}
	m.Submits.WithLabelValues(language, outcome).Inc()
}

func (m *Metrics) CountRecognitionSession() {
	if m == nil {
		return
	}
	m.RecognitionSessions.Inc()
}

func (m *Metrics) CountSynthesisUtterance() {
	if m == nil {
		return
	}
	m.SynthesisUtterances.Inc()
}

func (m *Metrics) CountSynthesisError() {
	if m == nil {
		return
	}
	m.SynthesisErrors.Inc()
}
