package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LeadScout/internal/domain/candidate"
	runDomain "github.com/turtacn/LeadScout/internal/domain/run"
	"github.com/turtacn/LeadScout/internal/trace"
	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
	runTypes "github.com/turtacn/LeadScout/pkg/types/run"
)

// mockRunService implements RunService with overridable function fields.
type mockRunService struct {
	submitFn  func(ctx context.Context, overrides runDomain.PlanOverrides) (*runDomain.Run, error)
	statusFn  func(ctx context.Context, id common.ID) (*runDomain.Run, error)
	resultsFn func(ctx context.Context, id common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error)
	traceFn   func(ctx context.Context, id common.ID) ([]trace.Event, error)
}

func (m *mockRunService) Submit(ctx context.Context, overrides runDomain.PlanOverrides) (*runDomain.Run, error) {
	return m.submitFn(ctx, overrides)
}

func (m *mockRunService) Status(ctx context.Context, id common.ID) (*runDomain.Run, error) {
	return m.statusFn(ctx, id)
}

func (m *mockRunService) Results(ctx context.Context, id common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error) {
	return m.resultsFn(ctx, id)
}

func (m *mockRunService) Trace(ctx context.Context, id common.ID) ([]trace.Event, error) {
	return m.traceFn(ctx, id)
}

func newTestRouter(svc RunService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRunHandler(svc)
	r := gin.New()
	r.POST("/api/v1/runs", h.Create)
	r.GET("/api/v1/runs/:id/status", h.Status)
	r.GET("/api/v1/runs/:id/results", h.Results)
	r.GET("/api/v1/runs/:id/trace", h.Trace)
	return r
}

func testRun(status runDomain.Status) *runDomain.Run {
	r := runDomain.New(runDomain.Plan{
		Rounds:             2,
		CandidatesPerRound: 20,
		TopK:               3,
		MaxViolations:      1,
		ScoringPenalty:     0.1,
	})
	r.Status = status
	return r
}

// envelope mirrors the generic API response wrapper for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRunHandler_Create_Accepted(t *testing.T) {
	t.Parallel()

	var captured runDomain.PlanOverrides
	svc := &mockRunService{
		submitFn: func(_ context.Context, overrides runDomain.PlanOverrides) (*runDomain.Run, error) {
			captured = overrides
			return testRun(runDomain.StatusQueued), nil
		},
	}
	router := newTestRouter(svc)

	rounds := 4
	w, env := doRequest(t, router, http.MethodPost, "/api/v1/runs",
		runTypes.CreateRequest{Rounds: &rounds})

	require.Equal(t, http.StatusAccepted, w.Code)
	require.True(t, env.Success)

	var resp runTypes.CreateResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, string(runDomain.StatusQueued), resp.Status)

	require.NotNil(t, captured.Rounds)
	assert.Equal(t, 4, *captured.Rounds)
	assert.Nil(t, captured.TopK)
}

func TestRunHandler_Create_BindingRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	svc := &mockRunService{
		submitFn: func(context.Context, runDomain.PlanOverrides) (*runDomain.Run, error) {
			t.Fatal("submit must not be reached")
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	rounds := 0
	w, env := doRequest(t, router, http.MethodPost, "/api/v1/runs",
		runTypes.CreateRequest{Rounds: &rounds})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(appErrors.ErrCodeValidation), env.Error.Code)
}

func TestRunHandler_Create_MalformedJSON(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockRunService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/runs", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunHandler_Status_OK(t *testing.T) {
	t.Parallel()

	r := testRun(runDomain.StatusRunning)
	r.CurrentRound = 2
	r.ProgressMessage = "round 2: evaluating candidates"
	svc := &mockRunService{
		statusFn: func(_ context.Context, id common.ID) (*runDomain.Run, error) {
			require.Equal(t, r.ID, id)
			return r, nil
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+r.ID.String()+"/status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp runTypes.StatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, r.ID, resp.RunID)
	assert.Equal(t, "running", resp.Status)
	assert.Equal(t, 2, resp.CurrentRound)
	assert.Equal(t, "round 2: evaluating candidates", resp.ProgressMessage)
	assert.Equal(t, 20, resp.Plan.CandidatesPerRound)
}

func TestRunHandler_Status_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockRunService{
		statusFn: func(context.Context, common.ID) (*runDomain.Run, error) {
			return nil, appErrors.New(appErrors.ErrCodeRunNotFound, "run not found")
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+common.NewID().String()+"/status", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(appErrors.ErrCodeRunNotFound), env.Error.Code)
	assert.Equal(t, "run not found", env.Error.Message)
}

func TestRunHandler_Status_InvalidID(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockRunService{
		statusFn: func(context.Context, common.ID) (*runDomain.Run, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	})

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/runs/not-a-uuid/status", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunHandler_Results_OK(t *testing.T) {
	t.Parallel()

	r := testRun(runDomain.StatusCompleted)
	all := []candidate.Evaluated{
		{
			Candidate:   candidate.Candidate{Structure: "CCO", Round: 1},
			Valid:       true,
			Descriptors: candidate.Descriptors{"qed": 0.91},
			Passed:      true,
			Score:       0.91,
			Rank:        1,
		},
		{
			Candidate:      candidate.Candidate{Structure: "c1ccccc1", Round: 2},
			Valid:          true,
			Descriptors:    candidate.Descriptors{"qed": 0.60},
			ViolationCount: 1,
			ViolatedRules:  []string{"logp"},
			Passed:         true,
			Score:          0.50,
			Rank:           2,
		},
	}
	svc := &mockRunService{
		resultsFn: func(context.Context, common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error) {
			return r, all, all[:1], nil
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+r.ID.String()+"/results", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp runTypes.ResultsResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 2, resp.TotalCandidates)
	require.Len(t, resp.Candidates, 2)
	require.Len(t, resp.TopCandidates, 1)
	assert.Equal(t, "CCO", resp.TopCandidates[0].Structure)
	assert.Equal(t, 1, resp.Candidates[0].Rank)
	assert.Equal(t, []string{"logp"}, resp.Candidates[1].ViolatedRules)
}

func TestRunHandler_Results_NotCompleted(t *testing.T) {
	t.Parallel()

	svc := &mockRunService{
		resultsFn: func(context.Context, common.ID) (*runDomain.Run, []candidate.Evaluated, []candidate.Evaluated, error) {
			return nil, nil, nil, appErrors.New(appErrors.ErrCodeRunNotCompleted, "run is not completed")
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+common.NewID().String()+"/results", nil)

	require.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, string(appErrors.ErrCodeRunNotCompleted), env.Error.Code)
}

func TestRunHandler_Trace_OK(t *testing.T) {
	t.Parallel()

	id := common.NewID()
	round := 1
	now := time.Now().UTC()
	svc := &mockRunService{
		traceFn: func(context.Context, common.ID) ([]trace.Event, error) {
			return []trace.Event{
				{RunID: id, Actor: "engine", Action: "run started", Timestamp: now},
				{RunID: id, Actor: "generator", Action: "candidates generated", Round: &round, Timestamp: now.Add(time.Millisecond)},
			}, nil
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+id.String()+"/trace", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp runTypes.TraceResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, id, resp.RunID)
	assert.Equal(t, 2, resp.TotalEvents)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "run started", resp.Events[0].Action)
	require.NotNil(t, resp.Events[1].Round)
	assert.Equal(t, 1, *resp.Events[1].Round)
}

func TestRunHandler_InternalErrorMasked(t *testing.T) {
	t.Parallel()

	svc := &mockRunService{
		statusFn: func(context.Context, common.ID) (*runDomain.Run, error) {
			return nil, appErrors.Wrap(context.DeadlineExceeded, appErrors.ErrCodeDatabaseError, "connection pool exhausted at 10.0.0.3")
		},
	}
	router := newTestRouter(svc)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/runs/"+common.NewID().String()+"/status", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "internal server error", env.Error.Message)
	assert.NotContains(t, env.Error.Message, "10.0.0.3")
}

//Personal.AI order the ending
