package llm

import "time"

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	TaskProgramRecommend TaskType = "program_recommend"
	TaskProjectRecommend TaskType = "project_recommend"
	TaskTimeEntryParse   TaskType = "time_entry_parse"
)

// Backend selects which text generator implementation New builds.
type Backend string

const (
	// BackendProjeXtPal calls the ProjeXtPal backend's /ai/generate endpoint.
	BackendProjeXtPal Backend = "projextpal"
	// BackendOllama talks to a local Ollama instance.
	BackendOllama Backend = "ollama"
	// BackendGemini calls the Gemini API directly.
	BackendGemini Backend = "gemini"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the text generation subsystem.
type LLMConfig struct {
	Backend    Backend
	LogCalls   bool
	Endpoint   string // base URL; for the projextpal backend this is the API base URL
	Model      string
	APIKey     string // gemini only
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig targeting the ProjeXtPal backend.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Backend:    BackendProjeXtPal,
		LogCalls:   false,
		Endpoint:   "http://localhost:8000",
		Model:      "",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskProgramRecommend: {Temperature: 0.3, MaxTokens: 1024},
			TaskProjectRecommend: {Temperature: 0.3, MaxTokens: 1024},
			TaskTimeEntryParse:   {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return time.Duration(tc.TimeoutMs) * time.Millisecond
	}
	if c.TimeoutMs > 0 {
		return time.Duration(c.TimeoutMs) * time.Millisecond
	}
	return 30 * time.Second
}

// DefaultModel returns the model name used when none is configured.
// The projextpal backend picks its own model, so it has no default.
func (c LLMConfig) DefaultModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Backend {
	case BackendOllama:
		return "llama3.2"
	case BackendGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

func (c LLMConfig) taskParams(req GenerateRequest) (float64, int) {
	tc := c.Tasks[req.Task]
	temp := tc.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := tc.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}
