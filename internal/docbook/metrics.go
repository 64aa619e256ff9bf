package docbook

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.abhg.dev/docbookgen/internal/atom"
	"go.abhg.dev/docbookgen/internal/docmodel"
)

// Metrics counts what the generator produces.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	documents   *prom.CounterVec
	diagnostics *prom.CounterVec
	atoms       *prom.CounterVec
	duration    prom.Histogram
}

// NewMetrics builds generator metrics and registers them with reg.
// If reg is nil, the metrics are registered with a fresh registry.
func NewMetrics(reg prom.Registerer) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	m := &Metrics{
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbookgen",
			Name:      "documents_total",
			Help:      "Documents written by kind of documented node",
		}, []string{"kind"}),
		diagnostics: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbookgen",
			Name:      "diagnostics_total",
			Help:      "Problems found in the documentation by kind",
		}, []string{"kind"}),
		atoms: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbookgen",
			Name:      "atoms_total",
			Help:      "Atoms rendered by kind",
		}, []string{"kind"}),
		duration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docbookgen",
			Name:      "generate_duration_seconds",
			Help:      "Duration of a full generation run",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(m.documents, m.diagnostics, m.atoms, m.duration)
	return m
}

func (m *Metrics) document(kind docmodel.Kind) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) diagnostic(kind DiagnosticKind) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) atom(kind atom.Kind) {
	if m == nil {
		return
	}
	m.atoms.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(d.Seconds())
}
