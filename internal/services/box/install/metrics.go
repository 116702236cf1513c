package install

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks box install runs. A nil *Metrics records nothing.
type Metrics struct {
	Items         *prometheus.CounterVec
	Deleted       prometheus.Counter
	ExceptionRows prometheus.Counter
	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
}

// NewMetrics registers the install metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Items: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxsync_box_items_total",
			Help: "Boxes processed by outcome (inserted, updated, skipped)",
		}, []string{"outcome"}),
		Deleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxsync_box_deleted_total",
			Help: "Boxes removed by delete sections",
		}),
		ExceptionRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "boxsync_box_visibility_rows_total",
			Help: "Box-to-page visibility rows written",
		}),
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "boxsync_install_runs_total",
			Help: "Install runs by result (ok, error)",
		}, []string{"result"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "boxsync_install_run_duration_seconds",
			Help:    "Duration of complete install runs",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) observeItem(outcome Outcome) {
	if m == nil {
		return
	}
	m.Items.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) observeDeleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.Deleted.Add(float64(n))
}

func (m *Metrics) observeExceptionRows(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ExceptionRows.Add(float64(n))
}

// observeRun records the result and duration of a run.
// Call with time.Now() at the start of the run.
func (m *Metrics) observeRun(start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Runs.WithLabelValues(result).Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
}
