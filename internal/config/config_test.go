package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyscholar/skyscholar/internal/llm"
)

// isolate points lookups at an empty temp tree so the developer's own
// config and API keys do not leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 1500*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, time.Second, cfg.Auth.Delay)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chat:
  reply_delay: 250ms
  provider: openai
llm:
  openai:
    model: gpt-4.1-mini
  retry:
    max_attempts: 5
content:
  questions_file: /tmp/bank.yaml
log:
  level: debug
`), 0o644))

	t.Setenv("SKYSCHOLAR_LLM_OPENAI_API_KEY", "sk-test")
	t.Setenv("SKYSCHOLAR_AUTH_DELAY", "0s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Chat.ReplyDelay)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, time.Duration(0), cfg.Auth.Delay)
	assert.Equal(t, "/tmp/bank.yaml", cfg.Content.QuestionsFile)

	mc, ok := cfg.ModelConfig()
	require.True(t, ok)
	assert.Equal(t, llm.ProviderOpenAI, mc.Provider)
	assert.NoError(t, mc.Validate())
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skyscholar.yaml"), []byte("chat:\n  provider: mock\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderMock, cfg.Chat.Provider)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chat:\n  provider: carrier-pigeon\nlog:\n  level: loud\n"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.Contains(t, err.Error(), "log.level")
}

func TestModelConfig(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	_, ok := cfg.ModelConfig()
	assert.False(t, ok, "keyword provider needs no model")

	cfg.Chat.Provider = ProviderAuto
	_, ok = cfg.ModelConfig()
	assert.False(t, ok, "auto without keys falls back to keyword")

	t.Setenv("GEMINI_API_KEY", "g-key")
	mc, ok := cfg.ModelConfig()
	require.True(t, ok)
	assert.Equal(t, llm.ProviderGemini, mc.Provider)
	assert.Equal(t, cfg.LLM.Timeout, mc.Timeout)
}

func TestOpenLogger(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "logs", "app.log")

	logger, closer, err := OpenLogger(LogConfig{File: path, Level: "warn"})
	require.NoError(t, err)
	logger.Info("dropped")
	logger.Warn("kept", "k", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "kept", rec["msg"])

	_, _, err = OpenLogger(LogConfig{Level: "verbose"})
	require.Error(t, err)
}

func TestOpenLogger_DefaultPath(t *testing.T) {
	dir := isolate(t)

	_, closer, err := OpenLogger(LogConfig{Level: "info"})
	require.NoError(t, err)
	defer closer.Close()

	_, err = os.Stat(filepath.Join(dir, "state", "skyscholar", "skyscholar.log"))
	require.NoError(t, err)
}
