package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	VoteSubmissionTotal        = "vote_submissions_total"
	BallotFinalizationTotal    = "ballot_finalizations_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		VoteSubmissionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: VoteSubmissionTotal,
			Help: "Count of vote submissions by result",
		}, []string{"mode", "result"}),
		BallotFinalizationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: BallotFinalizationTotal,
			Help: "Count of ballot finalizations by result",
		}, []string{"result"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
	}
)

// RegisterMetrics registers every collector above into r.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range PromCounters {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	for _, h := range PromHistograms {
		if err := r.Register(h); err != nil {
			return err
		}
	}

	return nil
}

// IncCounter is a no-op for an unknown counter name.
func IncCounter(name string, labels ...string) {
	if counter, ok := PromCounters[name]; ok {
		counter.WithLabelValues(labels...).Inc()
	}
}
