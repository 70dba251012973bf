package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsitecfg"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	generateDuration prom.Histogram
	generateOutcome  *prom.CounterVec
	filesWritten     *prom.CounterVec
	lintIssues       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		generateDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "generate_duration_seconds",
			Help:      "Duration of a full site configuration generation",
			Buckets:   prom.DefBuckets,
		}),
		generateOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "generate_total",
			Help:      "Generations by outcome",
		}, []string{"outcome"}),
		filesWritten: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_written_total",
			Help:      "Output files written by format",
		}, []string{"format"}),
		lintIssues: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "lint_issues_total",
			Help:      "Authoring issues reported by code",
		}, []string{"code"}),
	}
	reg.MustRegister(pr.generateDuration, pr.generateOutcome, pr.filesWritten, pr.lintIssues)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerateDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.generateDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncGenerateOutcome(outcome Outcome) {
	if p == nil {
		return
	}
	p.generateOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFileWritten(format string) {
	if p == nil {
		return
	}
	p.filesWritten.WithLabelValues(format).Inc()
}

func (p *PrometheusRecorder) IncLintIssues(code string, n int) {
	if p == nil || n <= 0 {
		return
	}
	p.lintIssues.WithLabelValues(code).Add(float64(n))
}
