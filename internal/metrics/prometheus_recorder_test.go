package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveGenerateDuration(150 * time.Millisecond)
	pr.IncGenerateOutcome(OutcomeSuccess)
	pr.IncGenerateOutcome(OutcomeSuccess)
	pr.IncFileWritten("json")
	pr.IncLintIssues("link-prefix", 3)
	pr.IncLintIssues("link-prefix", 0)

	assert.InDelta(t, 2, testutil.ToFloat64(pr.generateOutcome.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.filesWritten.WithLabelValues("json")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(pr.lintIssues.WithLabelValues("link-prefix")), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, mfs, 4)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveGenerateDuration(time.Second)
	pr.IncGenerateOutcome(OutcomeFailed)
	pr.IncFileWritten("yaml")
	pr.IncLintIssues("x", 1)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncGenerateOutcome(OutcomeCanceled)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `docsitecfg_generate_total{outcome="canceled"} 1`)
}

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)
