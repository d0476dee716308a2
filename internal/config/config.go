// Package config handles application configuration using Viper.
// Viper merges defaults, an optional YAML file, and environment variables in
// priority order. A .env file in the working directory is loaded first so
// local keys behave like real environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when no provider credential is configured.
// Startup fails on it before any lookup is attempted.
var ErrMissingAPIKey = errors.New("missing API key: set OPENAI_API_KEY or STORECTX_LLM_OPENAI_API_KEY")

// Search provider names accepted by llm.search_provider.
const (
	SearchProviderOpenAI    = "openai"
	SearchProviderAnthropic = "anthropic"
	SearchProviderNone      = "none"
)

// Config is the root configuration struct. Nested structs organize related settings.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LLMConfig struct {
	// SearchProvider selects the web-search backed fallback: "openai",
	// "anthropic", or "none" to disable the second stage.
	SearchProvider string          `mapstructure:"search_provider"`
	TimeoutMs      int             `mapstructure:"timeout_ms"`
	OpenAI         OpenAIConfig    `mapstructure:"openai"`
	Anthropic      AnthropicConfig `mapstructure:"anthropic"`
}

type OpenAIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	SearchModel string `mapstructure:"search_model"`
	BaseURL     string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type BatchConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from a YAML file and environment variables, then
// validates it. A missing credential yields ErrMissingAPIKey.
func Load(configPath string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("llm.search_provider", SearchProviderOpenAI)
	v.SetDefault("llm.timeout_ms", 30000)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.openai.search_model", "gpt-4o")
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("batch.parallelism", 4)
	v.SetDefault("log.level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// A missing config file is fine: defaults and env are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// STORECTX_ prefix + nested keys: STORECTX_LLM_TIMEOUT_MS=5000 → llm.timeout_ms=5000
	v.SetEnvPrefix("STORECTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider SDKs' conventional variable names work too.
	bindings := map[string][]string{
		"llm.openai.api_key":    {"STORECTX_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.openai.model":      {"STORECTX_LLM_OPENAI_MODEL", "OPENAI_MODEL"},
		"llm.openai.base_url":   {"STORECTX_LLM_OPENAI_BASE_URL", "OPENAI_BASE_URL"},
		"llm.timeout_ms":        {"STORECTX_LLM_TIMEOUT_MS", "OPENAI_TIMEOUT_MS"},
		"llm.anthropic.api_key": {"STORECTX_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
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

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.OpenAI.APIKey) == "" {
		return ErrMissingAPIKey
	}
	switch c.LLM.SearchProvider {
	case SearchProviderOpenAI, SearchProviderAnthropic, SearchProviderNone:
	default:
		return fmt.Errorf("unknown llm.search_provider %q", c.LLM.SearchProvider)
	}
	if c.LLM.TimeoutMs <= 0 {
		return fmt.Errorf("llm.timeout_ms must be positive, got %d", c.LLM.TimeoutMs)
	}
	if c.Batch.Parallelism <= 0 {
		return fmt.Errorf("batch.parallelism must be positive, got %d", c.Batch.Parallelism)
	}
	return nil
}

// Timeout returns the per-call network timeout.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutMs) * time.Millisecond
}

// Address returns the listen address string like "0.0.0.0:8080".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
