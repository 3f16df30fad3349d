package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_TimeEntryTimeoutIsShorter(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 15*time.Second, cfg.TaskTimeout(TaskTimeEntryParse))
	assert.Equal(t, 30*time.Second, cfg.TaskTimeout(TaskProjectRecommend))
}

func TestTaskTimeout_ZeroGlobalFallsBack(t *testing.T) {
	cfg := LLMConfig{}
	assert.Equal(t, 30*time.Second, cfg.TaskTimeout(TaskProgramRecommend))
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, "", LLMConfig{Backend: BackendProjeXtPal}.DefaultModel())
	assert.Equal(t, "llama3.2", LLMConfig{Backend: BackendOllama}.DefaultModel())
	assert.Equal(t, "gemini-2.0-flash", LLMConfig{Backend: BackendGemini}.DefaultModel())
	assert.Equal(t, "custom", LLMConfig{Backend: BackendOllama, Model: "custom"}.DefaultModel())
}

func TestTaskParams_RequestOverrides(t *testing.T) {
	cfg := DefaultConfig()
	temp, maxTok := cfg.taskParams(GenerateRequest{Task: TaskProjectRecommend})
	assert.Equal(t, 0.3, temp)
	assert.Equal(t, 1024, maxTok)

	hot, short := 0.9, 64
	temp, maxTok = cfg.taskParams(GenerateRequest{Task: TaskProjectRecommend, Temperature: &hot, MaxTokens: &short})
	assert.Equal(t, 0.9, temp)
	assert.Equal(t, 64, maxTok)
}
