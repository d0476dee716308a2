package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so a developer's own .env or
// config.yaml cannot leak into the result.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, env := range []string{
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_TIMEOUT_MS", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY",
		"STORECTX_LLM_OPENAI_API_KEY", "STORECTX_LLM_SEARCH_PROVIDER", "STORECTX_LLM_TIMEOUT_MS",
	} {
		t.Setenv(env, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, SearchProviderOpenAI, cfg.LLM.SearchProvider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout())
	assert.Equal(t, 4, cfg.Batch.Parallelism)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
}

func TestLoad_MissingAPIKey(t *testing.T) {
	isolate(t)

	_, err := Load("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4.1-nano")
	t.Setenv("OPENAI_TIMEOUT_MS", "1500")
	t.Setenv("STORECTX_LLM_SEARCH_PROVIDER", "anthropic")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1-nano", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 1500*time.Millisecond, cfg.LLM.Timeout())
	assert.Equal(t, SearchProviderAnthropic, cfg.LLM.SearchProvider)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("OPENAI_API_KEY") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-dotenv", cfg.LLM.OpenAI.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := filepath.Join(dir, "custom.yaml")
	yaml := "llm:\n  search_provider: none\nbatch:\n  parallelism: 9\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SearchProviderNone, cfg.LLM.SearchProvider)
	assert.Equal(t, 9, cfg.Batch.Parallelism)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LLM: LLMConfig{
				SearchProvider: SearchProviderOpenAI,
				TimeoutMs:      1000,
				OpenAI:         OpenAIConfig{APIKey: "sk"},
			},
			Batch: BatchConfig{Parallelism: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"blank key", func(c *Config) { c.LLM.OpenAI.APIKey = "   " }},
		{"unknown provider", func(c *Config) { c.LLM.SearchProvider = "bing" }},
		{"zero timeout", func(c *Config) { c.LLM.TimeoutMs = 0 }},
		{"zero parallelism", func(c *Config) { c.Batch.Parallelism = 0 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
