package ranking

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vijay-prabhu/leadradar/internal/lead"
)

// Metric names as constants for consistency.
const (
	MetricRecordsScored     = "leadradar_records_scored_total"
	MetricRecordsFiltered   = "leadradar_records_filtered_total"
	MetricDuplicatesRemoved = "leadradar_duplicates_removed_total"
	MetricRankDuration      = "leadradar_rank_duration_seconds"
	MetricLastResultsShown  = "leadradar_last_results_shown"
)

// Metrics contains Prometheus metrics for ranking runs.
// Rank itself never touches them; hosts call ObserveRun after a run.
type Metrics struct {
	recordsScored     prometheus.Counter
	recordsFiltered   prometheus.Counter
	duplicatesRemoved prometheus.Counter
	rankDuration      prometheus.Histogram
	lastResultsShown  prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		recordsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsScored,
			Help: "Total number of signal records scored",
		}),
		recordsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsFiltered,
			Help: "Total number of scored records rejected by the query, region or confidence filters",
		}),
		duplicatesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricDuplicatesRemoved,
			Help: "Total number of records dropped as duplicates of a higher-ranked lead",
		}),
		rankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankDuration,
			Help:    "Histogram of ranking run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}),
		lastResultsShown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastResultsShown,
			Help: "Number of leads shown by the last ranking run",
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveRun records the counts and duration of one ranking run
func (m *Metrics) ObserveRun(s Stats, elapsed time.Duration) {
	m.recordsScored.Add(float64(s.Input))
	m.recordsFiltered.Add(float64(s.Input - s.Passed))
	m.duplicatesRemoved.Add(float64(s.Duplicates))
	m.rankDuration.Observe(elapsed.Seconds())
	m.lastResultsShown.Set(float64(s.Shown))
}

// Collectors returns all Prometheus collectors
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.recordsScored,
		m.recordsFiltered,
		m.duplicatesRemoved,
		m.rankDuration,
		m.lastResultsShown,
	}
}

// Timed runs Rank and records the run on m. A nil m only ranks.
func (m *Metrics) Timed(records []lead.Record, cfg Config, now time.Time) Result {
	start := time.Now()
	res := Rank(records, cfg, now)
	if m != nil {
		m.ObserveRun(res.Stats, time.Since(start))
	}
	return res
}
