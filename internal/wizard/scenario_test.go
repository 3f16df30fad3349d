package wizard_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/projextpal/projextpal-cli/internal/auth"
	"github.com/projextpal/projextpal-cli/internal/backend"
	"github.com/projextpal/projextpal-cli/internal/flows"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/projextpal/projextpal-cli/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newHTTPTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test: local listener unavailable: %v", err)
	}
	srv := httptest.NewUnstartedServer(handler)
	srv.Listener = ln
	srv.Start()
	t.Cleanup(srv.Close)
	return srv
}

// fakeAPI serves the AI endpoint and the project collection.
type fakeAPI struct {
	mu           sync.Mutex
	aiStatus     int
	aiResponse   string
	createStatus int
	createBody   string
	prompts      []string
	authHeaders  []string
	created      []map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))

	switch r.URL.Path {
	case llm.GeneratePath:
		var body struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.prompts = append(f.prompts, body.Prompt)
		if f.aiStatus != 0 && f.aiStatus != http.StatusOK {
			w.WriteHeader(f.aiStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": f.aiResponse})
	case "/api/v1/projects/":
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.created = append(f.created, payload)
		status := f.createStatus
		if status == 0 {
			status = http.StatusCreated
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(f.createBody))
	default:
		http.NotFound(w, r)
	}
}

func newScenarioController(t *testing.T, api *fakeAPI) (*wizard.Controller, *recordingNotifier) {
	t.Helper()
	srv := newHTTPTestServer(t, api)
	creds := auth.Static("test-token")

	cfg := llm.DefaultConfig()
	cfg.Endpoint = srv.URL
	gen := llm.NewBackendClient(cfg, creds, nil)
	creator := backend.NewClient(backend.Config{BaseURL: srv.URL, TimeoutMs: 2000}, creds, nil)

	return newProjectController(t, gen, creator)
}

// Scenario A: an empty idea stays at Idea with a validation error.
func TestScenario_EmptyIdea(t *testing.T) {
	api := &fakeAPI{aiResponse: `{"category":"agile"}`}
	c, _ := newScenarioController(t, api)

	err := c.AnalyzeIdea(context.Background(), "")
	var verr *wizard.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, wizard.StepIdea, snapshot(t, c).Step)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.prompts)
}

// Scenario B: a structured answer becomes the recommendation.
func TestScenario_StructuredRecommendation(t *testing.T) {
	api := &fakeAPI{aiResponse: `{"category":"agile","reasoning":"Iterative delivery suits a portal.", "confidence":88}`}
	c, _ := newScenarioController(t, api)

	idea := "Build a customer portal over 6 months with a cross-functional team"
	require.NoError(t, c.AnalyzeIdea(context.Background(), idea))

	s := snapshot(t, c)
	assert.Equal(t, wizard.StepMethodologySelection, s.Step)
	require.NotNil(t, s.Recommendation)
	assert.Equal(t, "agile", s.Recommendation.Category)
	assert.Equal(t, 88, s.Recommendation.Confidence)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.prompts, 1)
	assert.Contains(t, api.prompts[0], idea)
	assert.Equal(t, "Bearer test-token", api.authHeaders[0])
}

// Scenario C: prose naming a key is matched heuristically.
func TestScenario_ProseHeuristic(t *testing.T) {
	api := &fakeAPI{aiResponse: "I think kanban fits well here"}
	c, _ := newScenarioController(t, api)

	require.NoError(t, c.AnalyzeIdea(context.Background(), "Support queue for the ops team"))

	s := snapshot(t, c)
	require.NotNil(t, s.Recommendation)
	assert.Equal(t, "kanban", s.Recommendation.Category)
	assert.Equal(t, wizard.HeuristicConfidence, s.Recommendation.Confidence)
	assert.Equal(t, "I think kanban fits well here", s.Recommendation.Reasoning)
}

// Scenario D: a server error message is surfaced verbatim and the
// session returns to Review.
func TestScenario_CreationFailureSurfacesServerMessage(t *testing.T) {
	api := &fakeAPI{
		aiResponse:   `{"category":"agile","confidence":88}`,
		createStatus: http.StatusInternalServerError,
		createBody:   `{"detail":"budget must be positive"}`,
	}
	c, notes := newScenarioController(t, api)

	require.NoError(t, c.AnalyzeIdea(context.Background(), "Build a customer portal"))
	require.NoError(t, c.SelectCategory("agile"))
	require.NoError(t, c.SetField("name", "Customer Portal"))
	require.NoError(t, c.SetField("budget", "0"))
	require.NoError(t, c.GoToReview())

	_, err := c.Submit(context.Background())
	var cerr *wizard.CreationFailedError
	require.True(t, errors.As(err, &cerr))
	var apiErr *backend.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	note, ok := notes.last()
	require.True(t, ok)
	assert.Equal(t, "budget must be positive", note.Message)

	s := snapshot(t, c)
	assert.Equal(t, wizard.StepReview, s.Step)
	assert.Equal(t, "Customer Portal", s.Form["name"])

	api.mu.Lock()
	defer api.mu.Unlock()
	require.Len(t, api.created, 1)
	assert.Equal(t, "Customer Portal", api.created[0]["name"])
	assert.Equal(t, "agile", api.created[0]["methodology"])
	assert.Equal(t, "2026-09-14", api.created[0]["target_end_date"])
}

func TestScenario_AIUnavailableOnNon2xx(t *testing.T) {
	api := &fakeAPI{aiStatus: http.StatusServiceUnavailable}
	c, notes := newScenarioController(t, api)

	err := c.AnalyzeIdea(context.Background(), "idea")
	var aiErr *wizard.AIUnavailableError
	require.True(t, errors.As(err, &aiErr))
	assert.True(t, errors.Is(err, llm.ErrAIUnavailable))
	assert.Equal(t, wizard.StepIdea, snapshot(t, c).Step)

	note, ok := notes.last()
	require.True(t, ok)
	assert.Equal(t, wizard.LevelError, note.Level)
}

// Closing the session cancels the pending call and its late result is
// discarded without leaking the caller goroutine.
func TestClose_CancelsInFlightAnalysis(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{text: `{"category":"agile"}`, started: make(chan struct{}, 1), gate: make(chan struct{})}
	c := wizard.NewController(flows.Project(), gen, &fakeCreator{})

	done := make(chan error, 1)
	go func() { done <- c.AnalyzeIdea(context.Background(), "idea") }()
	<-gen.started

	c.Close()
	assert.ErrorIs(t, <-done, wizard.ErrSessionClosed)
	assert.True(t, c.Closed())
}

func TestReset_DiscardsLateSubmitResult(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	creator := &fakeCreator{id: "9", started: make(chan struct{}, 1), gate: make(chan struct{})}
	c := wizard.NewController(flows.Project(), &fakeGenerator{text: `{"category":"agile"}`}, creator)
	defer c.Close()
	advanceToReview(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-creator.started

	c.Reset()
	assert.ErrorIs(t, <-done, wizard.ErrSessionClosed)

	s := snapshot(t, c)
	assert.Equal(t, wizard.StepIdea, s.Step)
	assert.Empty(t, s.Form)
}
