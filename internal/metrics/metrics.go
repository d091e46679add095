package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CaptureAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leetfolio_capture_attempts_total",
		Help: "Total capture attempts started",
	})
	PrimaryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leetfolio_primary_failures_total",
		Help: "Primary extractions that failed or returned invalid output",
	})
	FallbackScans = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leetfolio_fallback_scans_total",
		Help: "Page scans performed after a primary failure",
	})
	CaptureFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "leetfolio_capture_failures_total",
		Help: "Captures where both extraction stages failed",
	})
)

func init() {
	prometheus.MustRegister(CaptureAttempts, PrimaryFailures, FallbackScans, CaptureFailures)
}
