// Package metrics provides Prometheus metric collection and exposure.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metric-recording interface consumed by the HTTP layer.
type Recorder interface {
	RecordSnapshot()
	RecordSimulation()
	RecordScenarioLoad(scenarioID string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector implements Recorder on a Prometheus registry.
type Collector struct {
	snapshots      prometheus.Counter
	simulations    prometheus.Counter
	scenarioLoads  *prometheus.CounterVec
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wallengine_snapshot_calculations_total",
			Help: "Number of wall snapshot calculations served",
		}),
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wallengine_simulations_total",
			Help: "Number of exceed-date simulations served",
		}),
		scenarioLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallengine_scenario_loads_total",
			Help: "Demo scenario loads by scenario id",
		}, []string{"scenario"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wallengine_http_status_total",
			Help: "HTTP responses by status code",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wallengine_request_latency_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.snapshots,
		c.simulations,
		c.scenarioLoads,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

func (c *Collector) RecordSnapshot()   { c.snapshots.Inc() }
func (c *Collector) RecordSimulation() { c.simulations.Inc() }

func (c *Collector) RecordScenarioLoad(scenarioID string) {
	c.scenarioLoads.WithLabelValues(scenarioID).Inc()
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything. Useful in tests.
type Nop struct{}

func (Nop) RecordSnapshot()                    {}
func (Nop) RecordSimulation()                  {}
func (Nop) RecordScenarioLoad(string)          {}
func (Nop) RecordHTTPStatus(int)               {}
func (Nop) RecordRequestLatency(time.Duration) {}
