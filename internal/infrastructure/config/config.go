package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"requirements-agent/internal/domain/entity"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix     = "REQAGENT_"
	ConfigFileEnv = "REQAGENT_CONFIG"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	OpenAIKeyEnv    = "OPENAI_API_KEY"
	AnthropicKeyEnv = "ANTHROPIC_API_KEY"

	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

var ErrMissingCredential = errors.New("missing API credential")

type Config struct {
	LLM    LLMConfig    `koanf:"llm"`
	Agent  AgentConfig  `koanf:"agent"`
	Log    LogConfig    `koanf:"log"`
	Output OutputConfig `koanf:"output"`
}

type LLMConfig struct {
	Provider    string  `koanf:"provider"` // openai, anthropic
	Model       string  `koanf:"model"`
	BaseURL     string  `koanf:"base_url"`
	Temperature float32 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
	LogHTTP     bool    `koanf:"log_http"`
	APIKey      string  `koanf:"-"`
}

type AgentConfig struct {
	Backend       entity.AgentBackend `koanf:"backend"`
	MaxIterations int                 `koanf:"max_iterations"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Output string `koanf:"output"` // stderr, file
}

type OutputConfig struct {
	RenderMarkdown bool `koanf:"render_markdown"`
}

// Load reads defaults, then the optional YAML file named by REQAGENT_CONFIG,
// then REQAGENT_* variables. The provider credential is checked last, before
// any client can be built.
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"llm.provider":           ProviderOpenAI,
		"llm.model":              "",
		"llm.base_url":           "",
		"llm.temperature":        0,
		"llm.max_tokens":         4096,
		"llm.log_http":           false,
		"agent.backend":          string(entity.AgentBackendNative),
		"agent.max_iterations":   15,
		"log.level":              "info",
		"log.output":             "stderr",
		"output.render_markdown": false,
	}
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	apiKey, err := Credential(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	cfg.LLM.APIKey = apiKey

	return &cfg, nil
}

// envKey maps REQAGENT_LLM_BASE_URL to llm.base_url. Only the first underscore
// after the prefix separates the section from the key.
func envKey(s string) string {
	if s == ConfigFileEnv {
		return ""
	}
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
}

func (c *Config) normalize() error {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.Model == "" {
			c.LLM.Model = DefaultOpenAIModel
		}
	case ProviderAnthropic:
		if c.LLM.Model == "" {
			c.LLM.Model = DefaultAnthropicModel
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	switch c.Agent.Backend {
	case entity.AgentBackendNative:
	case entity.AgentBackendLangChain:
		if c.LLM.Provider != ProviderOpenAI {
			return fmt.Errorf("agent backend %q supports only the %q provider", c.Agent.Backend, ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unknown agent backend %q", c.Agent.Backend)
	}

	if c.Agent.MaxIterations <= 0 {
		return fmt.Errorf("agent.max_iterations must be positive, got %d", c.Agent.MaxIterations)
	}
	return nil
}

// CredentialEnv names the environment variable holding the provider's key.
func CredentialEnv(provider string) string {
	if provider == ProviderAnthropic {
		return AnthropicKeyEnv
	}
	return OpenAIKeyEnv
}

func Credential(provider string) (string, error) {
	name := CredentialEnv(provider)
	key := strings.TrimSpace(os.Getenv(name))
	if key == "" {
		return "", fmt.Errorf("%w: environment variable %s is not set; set your key before running", ErrMissingCredential, name)
	}
	return key, nil
}
