package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at a temp dir and runs from another
// temp dir, so no real config files are read.
func isolate(t *testing.T) (globalDir, projectDir string) {
	t.Helper()
	globalDir = t.TempDir()
	projectDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", globalDir)
	t.Chdir(projectDir)
	return globalDir, projectDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGlobalPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/projextpal/projextpal.yml", GlobalPath())
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "projextpal.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "projextpal", cfg.AI.Backend)
	assert.Equal(t, 30000, cfg.AI.TimeoutMs)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, DefaultDBPath(), cfg.State.DBPath)
	assert.Equal(t, Default().API.TimeoutMs, cfg.API.TimeoutMs)
	assert.Equal(t, Default().AI.MaxRetries, cfg.AI.MaxRetries)
	assert.Equal(t, Default().AI.LogCalls, cfg.AI.LogCalls)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	globalDir, _ := isolate(t)
	writeFile(t, filepath.Join(globalDir, "projextpal", "projextpal.yml"), `
api:
  base_url: https://global.example.com
  web_url: https://app.global.example.com
ai:
  max_retries: 2
`)
	writeFile(t, "projextpal.yml", `
api:
  base_url: https://project.example.com
`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://project.example.com", cfg.API.BaseURL)
	assert.Equal(t, "https://app.global.example.com", cfg.API.WebURL)
	assert.Equal(t, 2, cfg.AI.MaxRetries)
}

func TestLoad_EnvOverridesFiles(t *testing.T) {
	isolate(t)
	writeFile(t, "projextpal.yml", "ai:\n  backend: ollama\n  timeout_ms: 1000\n")
	t.Setenv("PROJEXTPAL_AI_TIMEOUT_MS", "4500")
	t.Setenv("PROJEXTPAL_API_TOKEN", "env-token")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.AI.Backend)
	assert.Equal(t, 4500, cfg.AI.TimeoutMs)
	assert.Equal(t, "env-token", cfg.API.Token)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PROJEXTPAL_API_BASE_URL", "https://env.example.com")
	t.Setenv("PROJEXTPAL_LOG_LEVEL", "debug")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--api-url", "https://flag.example.com"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag does not mask env")
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	isolate(t)
	t.Setenv("PROJEXTPAL_AI_BACKEND", "openai")

	_, err := Load(nil)
	assert.ErrorIs(t, err, llm.ErrUnknownBackend)
}

func TestLLM_EndpointSelection(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://api.example.com"
	assert.Equal(t, "https://api.example.com", cfg.LLM().Endpoint)

	cfg.AI.Backend = "ollama"
	assert.Equal(t, "http://localhost:11434", cfg.LLM().Endpoint)

	cfg.AI.Endpoint = "http://gpu-box:11434"
	out := cfg.LLM()
	assert.Equal(t, "http://gpu-box:11434", out.Endpoint)
	assert.Equal(t, llm.BackendOllama, out.Backend)
	assert.Equal(t, 30000, out.TimeoutMs)
	assert.NotEmpty(t, out.Tasks, "per-task defaults are kept")
}

func TestCredentials_TokenBeatsFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	writeFile(t, tokenFile, "file-token\n")

	cfg := Default()
	cfg.API.TokenFile = tokenFile
	tok, err := cfg.Credentials().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file-token", tok)

	cfg.API.Token = "flag-token"
	tok, err = cfg.Credentials().Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "flag-token", tok)
}

func TestWebLink(t *testing.T) {
	cfg := Default()
	cfg.API.WebURL = "https://app.projextpal.com/"
	assert.Equal(t, "https://app.projextpal.com/projects/7", cfg.WebLink("/projects/7"))
}

func TestWriteGlobal_LoadsBack(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.API.BaseURL = "https://written.example.com"
	cfg.AI.Backend = "gemini"
	cfg.AI.APIKey = "k"

	path, err := WriteGlobal(cfg)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "https://written.example.com", loaded.API.BaseURL)
	assert.Equal(t, "gemini", loaded.AI.Backend)
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.API.Token = "secret"
	red := cfg.Redacted()
	assert.Equal(t, "********", red.API.Token)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Empty(t, red.AI.APIKey)
}
