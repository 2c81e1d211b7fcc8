package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SheetMetrics records spreadsheet traffic and cache effectiveness.
type SheetMetrics struct {
	calls       *prometheus.CounterVec
	callErrors  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
}

// NewSheetMetrics registers the spreadsheet metrics on the provided registerer.
func NewSheetMetrics(reg prometheus.Registerer) *SheetMetrics {
	if reg == nil {
		return &SheetMetrics{}
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_calls_total",
		Help: "Remote spreadsheet calls by tab and operation.",
	}, []string{"tab", "op"})
	callErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_call_errors_total",
		Help: "Failed remote spreadsheet calls by tab and operation.",
	}, []string{"tab", "op"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sheet_call_duration_seconds",
		Help:    "Duration of remote spreadsheet calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tab", "op"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_cache_hits_total",
		Help: "Tab reads served from the TTL cache.",
	}, []string{"tab"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sheet_cache_misses_total",
		Help: "Tab reads that fell through to the spreadsheet.",
	}, []string{"tab"})
	reg.MustRegister(calls, callErrors, duration, cacheHits, cacheMisses)
	return &SheetMetrics{
		calls:       calls,
		callErrors:  callErrors,
		duration:    duration,
		cacheHits:   cacheHits,
		cacheMisses: cacheMisses,
	}
}

// ObserveCall records one remote call with its outcome and duration.
func (m *SheetMetrics) ObserveCall(tab, op string, d time.Duration, err error) {
	if m == nil || m.calls == nil {
		return
	}
	tab = normalizeLabel(tab)
	m.calls.WithLabelValues(tab, op).Inc()
	m.duration.WithLabelValues(tab, op).Observe(d.Seconds())
	if err != nil {
		m.callErrors.WithLabelValues(tab, op).Inc()
	}
}

// IncCacheHit counts a read served from cache.
func (m *SheetMetrics) IncCacheHit(tab string) {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.WithLabelValues(normalizeLabel(tab)).Inc()
}

// IncCacheMiss counts a read that reached the spreadsheet.
func (m *SheetMetrics) IncCacheMiss(tab string) {
	if m == nil || m.cacheMisses == nil {
		return
	}
	m.cacheMisses.WithLabelValues(normalizeLabel(tab)).Inc()
}

func normalizeLabel(tab string) string {
	if tab == "" {
		return "unknown"
	}
	return tab
}
