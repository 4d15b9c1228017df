// Package config loads layered settings: built-in defaults, then an
// optional YAML file, then SKYSCHOLAR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/skyscholar/skyscholar/internal/auth"
	"github.com/skyscholar/skyscholar/internal/llm"
)

// EnvPrefix is prepended to every environment override, e.g.
// SKYSCHOLAR_CHAT_PROVIDER or SKYSCHOLAR_LLM_ANTHROPIC_API_KEY.
const EnvPrefix = "SKYSCHOLAR"

// Answer provider settings for chat.provider.
const (
	ProviderKeyword = "keyword"
	ProviderAuto    = "auto"
)

type Config struct {
	Chat    ChatConfig    `mapstructure:"chat"`
	LLM     llm.Config    `mapstructure:"llm"`
	Auth    auth.Config   `mapstructure:"auth"`
	Content ContentConfig `mapstructure:"content"`
	Log     LogConfig     `mapstructure:"log"`
}

type ChatConfig struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`

	// Provider is "keyword", "auto" (first vendor key found in the
	// environment, else keyword) or an llm provider name.
	Provider string `mapstructure:"provider"`
}

// ContentConfig points at optional replacements for the bundled files.
type ContentConfig struct {
	QuestionsFile string `mapstructure:"questions_file"`
	DocumentsFile string `mapstructure:"documents_file"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func DefaultConfig() Config {
	return Config{
		Chat: ChatConfig{
			ReplyDelay: 1500 * time.Millisecond,
			Provider:   ProviderKeyword,
		},
		LLM:  llm.DefaultConfig(),
		Auth: auth.DefaultConfig(),
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads configuration. An explicit path must exist; otherwise
// skyscholar.yaml is looked up in the working directory and then in
// $XDG_CONFIG_HOME/skyscholar, and its absence is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("skyscholar")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("chat.reply_delay", d.Chat.ReplyDelay)
	v.SetDefault("chat.provider", d.Chat.Provider)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.LLM.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.LLM.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.LLM.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.LLM.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.LLM.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.LLM.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.LLM.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.LLM.Retry.Multiplier)

	v.SetDefault("auth.delay", d.Auth.Delay)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)

	v.SetDefault("content.questions_file", "")
	v.SetDefault("content.documents_file", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	var errs []error
	if c.Chat.ReplyDelay < 0 {
		errs = append(errs, fmt.Errorf("chat.reply_delay must not be negative"))
	}
	switch c.Chat.Provider {
	case ProviderKeyword, ProviderAuto, llm.ProviderAnthropic, llm.ProviderOpenAI,
		llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("chat.provider: unknown provider %q", c.Chat.Provider))
	}
	if c.Auth.Delay < 0 {
		errs = append(errs, fmt.Errorf("auth.delay must not be negative"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be positive"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ModelConfig returns the llm config for the chat provider setting, or
// false when chat should use the keyword provider.
func (c Config) ModelConfig() (llm.Config, bool) {
	switch c.Chat.Provider {
	case ProviderKeyword:
		return llm.Config{}, false
	case ProviderAuto:
		if c.LLM.Validate() == nil && c.LLM.Provider != llm.ProviderMock {
			return c.LLM, true
		}
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return llm.Config{}, false
		}
		discovered.Retry = c.LLM.Retry
		discovered.Timeout = c.LLM.Timeout
		return discovered, true
	default:
		mc := c.LLM
		mc.Provider = c.Chat.Provider
		return mc, true
	}
}

func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "skyscholar"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/skyscholar/skyscholar.log,
// creating its directory.
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	p := filepath.Join(stateHome, "skyscholar", "skyscholar.log")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
