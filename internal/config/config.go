// Package config provides layered configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projextpal/projextpal-cli/internal/auth"
	"github.com/projextpal/projextpal-cli/internal/llm"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	fileName  = "projextpal.yml"
	envPrefix = "PROJEXTPAL"
)

// Config holds all configuration values for projextpal.
type Config struct {
	API   APIConfig   `mapstructure:"api" yaml:"api"`
	AI    AIConfig    `mapstructure:"ai" yaml:"ai"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	State StateConfig `mapstructure:"state" yaml:"state"`
}

type APIConfig struct {
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	WebURL    string `mapstructure:"web_url" yaml:"web_url"`
	Token     string `mapstructure:"token" yaml:"token,omitempty"`
	TokenFile string `mapstructure:"token_file" yaml:"token_file,omitempty"`
	TimeoutMs int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
}

type AIConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	Endpoint   string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`
	Model      string `mapstructure:"model" yaml:"model,omitempty"`
	APIKey     string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	TimeoutMs  int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	MaxRetries int    `mapstructure:"max_retries" yaml:"max_retries"`
	LogCalls   bool   `mapstructure:"log_calls" yaml:"log_calls"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

type StateConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			WebURL:    "http://localhost:3000",
			TimeoutMs: 15000,
		},
		AI: AIConfig{
			Backend:   string(llm.BackendProjeXtPal),
			TimeoutMs: 30000,
		},
		Log:   LogConfig{Level: "warn"},
		State: StateConfig{DBPath: DefaultDBPath()},
	}
}

// FlagKeys maps persistent flag names onto config keys.
var FlagKeys = map[string]string{
	"api-url":    "api.base_url",
	"token":      "api.token",
	"ai-backend": "ai.backend",
	"log-level":  "log.level",
	"log-file":   "log.file",
	"db":         "state.db_path",
}

// Load loads configuration with full precedence:
// flags > env vars > project config > global config > defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	defaults := map[string]any{
		"api.base_url":   def.API.BaseURL,
		"api.web_url":    def.API.WebURL,
		"api.token":      "",
		"api.token_file": "",
		"api.timeout_ms": def.API.TimeoutMs,
		"ai.backend":     def.AI.Backend,
		"ai.endpoint":    "",
		"ai.model":       "",
		"ai.api_key":     "",
		"ai.timeout_ms":  def.AI.TimeoutMs,
		"ai.max_retries": def.AI.MaxRetries,
		"ai.log_calls":   def.AI.LogCalls,
		"log.level":      def.Log.Level,
		"log.file":       "",
		"state.db_path":  def.State.DBPath,
	}
	for key, val := range defaults {
		v.SetDefault(key, val)
		env := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	if globalPath := GlobalPath(); fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}
	if projectPath := ProjectPath(); fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the clients cannot work with.
func (c *Config) Validate() error {
	switch llm.Backend(c.AI.Backend) {
	case llm.BackendProjeXtPal, llm.BackendOllama, llm.BackendGemini:
	default:
		return fmt.Errorf("%w: ai.backend %q", llm.ErrUnknownBackend, c.AI.Backend)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must be set")
	}
	if c.AI.MaxRetries < 0 {
		return fmt.Errorf("ai.max_retries must not be negative")
	}
	return nil
}

// LLM converts the AI section into the generator configuration. The
// projextpal backend is reached through the API base URL unless an
// explicit endpoint is set.
func (c *Config) LLM() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Backend = llm.Backend(c.AI.Backend)
	out.Model = c.AI.Model
	out.APIKey = c.AI.APIKey
	out.LogCalls = c.AI.LogCalls
	out.MaxRetries = c.AI.MaxRetries
	if c.AI.TimeoutMs > 0 {
		out.TimeoutMs = c.AI.TimeoutMs
	}
	switch {
	case c.AI.Endpoint != "":
		out.Endpoint = c.AI.Endpoint
	case out.Backend == llm.BackendOllama:
		out.Endpoint = "http://localhost:11434"
	default:
		out.Endpoint = c.API.BaseURL
	}
	return out
}

// Credentials returns the bearer-token provider for the backend. An
// explicit token wins over the token file.
func (c *Config) Credentials() auth.Provider {
	return auth.Chain{auth.Static(c.API.Token), auth.File(c.API.TokenFile)}
}

// WebLink returns the browser URL for a detail path such as /projects/7.
func (c *Config) WebLink(path string) string {
	return strings.TrimRight(c.API.WebURL, "/") + path
}

// Redacted returns a copy with secrets masked, for display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.API.Token != "" {
		out.API.Token = "********"
	}
	if out.AI.APIKey != "" {
		out.AI.APIKey = "********"
	}
	return &out
}

// GlobalPath returns $XDG_CONFIG_HOME/projextpal/projextpal.yml, or
// ~/.config/projextpal/projextpal.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "projextpal", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "projextpal", fileName)
}

// ProjectPath returns ./projextpal.yml.
func ProjectPath() string {
	return fileName
}

// DefaultDBPath returns ~/.projextpal/state.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".projextpal", "state.db")
	}
	return filepath.Join(home, ".projextpal", "state.db")
}

// WriteGlobal writes cfg to the global location and returns the path.
func WriteGlobal(cfg *Config) (string, error) {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return path, write(path, cfg)
}

// WriteProject writes cfg to ./projextpal.yml and returns the path.
func WriteProject(cfg *Config) (string, error) {
	path := ProjectPath()
	return path, write(path, cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	// The file may hold an api token.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
