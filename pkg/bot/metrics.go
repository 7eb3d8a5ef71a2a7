package bot

import "github.com/prometheus/client_golang/prometheus"

// Collectors registered on the default registry so the /metrics
// endpoint picks them up.
var (
	fetchRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "paperbot_fetch_runs_total",
		Help: "Count of fetch runs by outcome.",
	}, []string{"status"})

	papersSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paperbot_papers_saved_total",
		Help: "Count of new papers saved.",
	})

	papersSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paperbot_papers_skipped_total",
		Help: "Count of papers skipped as already stored.",
	})

	fetchDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "paperbot_fetch_duration_seconds",
		Help: "Duration of the most recent fetch run.",
	})
)

func init() {
	prometheus.MustRegister(fetchRuns, papersSaved, papersSkipped, fetchDuration)
}
