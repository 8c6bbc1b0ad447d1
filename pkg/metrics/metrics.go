package metrics

import (
	"net/http"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts roster generation outcomes
type Recorder struct {
	registry  *prometheus.Registry
	generated prometheus.Counter
	failed    prometheus.Counter
	warnings  *prometheus.CounterVec
	spare     *prometheus.GaugeVec
}

// NewRecorder registers the roster metrics on a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_rosters_generated_total",
			Help: "Rosters generated successfully.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_rosters_failed_total",
			Help: "Roster requests rejected by input validation.",
		}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_roster_warnings_total",
			Help: "Warnings raised while building rosters, by kind.",
		}, []string{"kind"}),
		spare: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "planner_last_spare_workers",
			Help: "Spare workers in the most recent roster, by period.",
		}, []string{"period"}),
	}
	reg.MustRegister(r.generated, r.failed, r.warnings, r.spare)
	return r
}

// Observe records a generated roster
func (r *Recorder) Observe(roster *models.Roster) {
	r.generated.Inc()
	for _, w := range roster.Warnings {
		r.warnings.WithLabelValues(w.Kind).Inc()
	}
	r.spare.WithLabelValues(models.PeriodMorning).Set(float64(len(roster.SpareMorning)))
	r.spare.WithLabelValues(models.PeriodAfternoon).Set(float64(len(roster.SpareAfternoon)))
}

// Failed records a rejected roster request
func (r *Recorder) Failed() {
	r.failed.Inc()
}

// Handler exposes the registry in the Prometheus text format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
