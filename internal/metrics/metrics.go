package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors of the dashboard backend.
type Metrics struct {
	IndicatorComputeDur prometheus.Histogram
	FetchTotal          *prometheus.CounterVec // labels: provider, op, status
	ChartSuperseded     prometheus.Counter
	WatchlistSize       prometheus.Gauge
	WSClients           prometheus.Gauge
	QuoteRefreshDur     prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New registers and returns all collectors. A nil registry means a fresh
// private one, which keeps tests independent.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		IndicatorComputeDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockdash_indicator_compute_seconds",
			Help:    "Time spent computing the indicator bundle for one bar series",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stockdash_fetch_total",
			Help: "Upstream data provider calls",
		}, []string{"provider", "op", "status"}),
		ChartSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockdash_chart_superseded_total",
			Help: "Chart loads discarded because a newer load for the same view finished the race",
		}),
		WatchlistSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockdash_watchlist_size",
			Help: "Number of symbols on the watchlist",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stockdash_ws_clients",
			Help: "Connected watchlist websocket clients",
		}),
		QuoteRefreshDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockdash_quote_refresh_seconds",
			Help:    "Duration of one scheduled quote refresh pass",
			Buckets: prometheus.DefBuckets,
		}),
		gatherer: reg,
	}
	reg.MustRegister(
		m.IndicatorComputeDur,
		m.FetchTotal,
		m.ChartSuperseded,
		m.WatchlistSize,
		m.WSClients,
		m.QuoteRefreshDur,
	)
	return m
}

// The Observe* helpers are no-ops on a nil *Metrics so components can run
// without instrumentation.

// ObserveFetch counts one provider call.
func (m *Metrics) ObserveFetch(provider, op string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.FetchTotal.WithLabelValues(provider, op, status).Inc()
}

// ObserveIndicatorCompute records how long one indicator bundle took.
func (m *Metrics) ObserveIndicatorCompute(d time.Duration) {
	if m == nil {
		return
	}
	m.IndicatorComputeDur.Observe(d.Seconds())
}

// ObserveChartSuperseded counts one discarded chart load.
func (m *Metrics) ObserveChartSuperseded() {
	if m == nil {
		return
	}
	m.ChartSuperseded.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
