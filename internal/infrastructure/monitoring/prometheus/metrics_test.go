package prometheus

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New()

	m.RecordRunStarted()
	m.RecordRunStarted()
	m.RecordRunCompleted(1.5)
	m.RecordRunFailed()
	m.RecordCandidates(40, 25, 3)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RunsStarted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsCompleted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RunsFailed), 0)
	assert.InDelta(t, 40, testutil.ToFloat64(m.CandidatesEvaluated), 0)
	assert.InDelta(t, 25, testutil.ToFloat64(m.CandidatesAdmitted), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.CandidatesInvalid), 0)
}

func TestMetrics_HandlerExposition(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordRunStarted()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "leadscout_runs_started_total 1")
}

func TestMetrics_NilIsNoOp(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRunStarted()
		m.RecordRunCompleted(2)
		m.RecordRunFailed()
		m.RecordCandidates(1, 1, 0)
		_ = m.Handler()
	})
}

//Personal.AI order the ending
