// Package metrics records run statistics for Prometheus.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vocab"

// Truncation reasons.
const (
	ReasonSize     = "size"
	ReasonMinCount = "min_count"
)

// Recorder holds the metrics of one vocabulary build in its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	tokens      prometheus.Counter
	unique      prometheus.Gauge
	emitted     prometheus.Gauge
	truncations *prometheus.CounterVec
	duration    prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		tokens: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_processed_total",
			Help:      "Tokens read from the corpus",
		}),
		unique: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unique_words",
			Help:      "Distinct tokens counted before truncation",
		}),
		emitted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "emitted_words",
			Help:      "Vocabulary entries written",
		}),
		truncations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "truncations_total",
			Help:      "Vocabulary truncations by reason",
		}, []string{"reason"}),
		duration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last build",
		}),
	}
}

// AddTokens adds n processed tokens.
func (r *Recorder) AddTokens(n int64) { r.tokens.Add(float64(n)) }

// SetUnique records the distinct token count.
func (r *Recorder) SetUnique(n int) { r.unique.Set(float64(n)) }

// SetEmitted records the number of written entries.
func (r *Recorder) SetEmitted(n int) { r.emitted.Set(float64(n)) }

// Truncated counts a truncation for reason.
func (r *Recorder) Truncated(reason string) { r.truncations.WithLabelValues(reason).Inc() }

// SetDuration records the run time.
func (r *Recorder) SetDuration(d time.Duration) { r.duration.Set(d.Seconds()) }

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes the metrics in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// ServerMetrics instruments vocab_server lookups.
type ServerMetrics struct {
	registry *prometheus.Registry
	lookups  *prometheus.CounterVec
	words    prometheus.Gauge
}

// NewServerMetrics creates server metrics with a fresh registry.
func NewServerMetrics() *ServerMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &ServerMetrics{
		registry: reg,
		lookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "lookups_total",
			Help:      "Word lookups by result",
		}, []string{"result"}),
		words: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "loaded_words",
			Help:      "Words in the served vocabulary",
		}),
	}
}

// Lookup counts a lookup. hit reports whether the word was found.
func (m *ServerMetrics) Lookup(hit bool) {
	if hit {
		m.lookups.WithLabelValues("hit").Inc()
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

// SetWords records the served vocabulary size.
func (m *ServerMetrics) SetWords(n int) { m.words.Set(float64(n)) }

// Handler serves the registry.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
