package di

import (
	"fmt"
	"net/http"

	"requirements-agent/internal/adapter/tool"
	"requirements-agent/internal/application/port/input"
	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/application/service"
	"requirements-agent/internal/domain/entity"
	"requirements-agent/internal/infrastructure/config"
	"requirements-agent/internal/infrastructure/glossary"
	"requirements-agent/internal/infrastructure/llm/anthropic"
	"requirements-agent/internal/infrastructure/llm/langchain"
	"requirements-agent/internal/infrastructure/llm/openai"
	"requirements-agent/internal/infrastructure/logger"
	"requirements-agent/internal/infrastructure/prompts"
	"requirements-agent/internal/usecase/analyzer"
	"requirements-agent/internal/usecase/executor"

	"github.com/google/uuid"
)

type Container struct {
	RunID    string
	Logger   output.LoggerPort
	Glossary output.GlossaryPort
	Tools    output.ToolRegistry
	Runner   output.AgentRunner
	Analyzer input.RequirementsAnalyzer
}

type Config struct {
	App *config.Config
	// Progress receives tool-call updates; nil disables them.
	Progress output.ProgressPort
	// Logger overrides the logger built from App.Log.
	Logger output.LoggerPort
}

// NewContainer wires the analyzer. A missing credential fails here, before
// any client exists.
func NewContainer(cfg Config) (*Container, error) {
	app := cfg.App
	if app == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if app.LLM.APIKey == "" {
		return nil, fmt.Errorf("%w: environment variable %s is not set", config.ErrMissingCredential, config.CredentialEnv(app.LLM.Provider))
	}

	runID := uuid.NewString()

	baseLog := cfg.Logger
	if baseLog == nil {
		l, err := logger.NewLoggerAdapter(logger.Config{
			Level:  app.Log.Level,
			Output: app.Log.Output,
			Name:   runID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		baseLog = l
	}
	log := baseLog.WithField("run_id", runID)

	terms := glossary.New()
	tools := service.NewToolRegistry()
	tools.Register(tool.NewTermLookupTool(terms, log))

	runner, err := newRunner(app, log, cfg.Progress)
	if err != nil {
		baseLog.Close()
		return nil, err
	}

	log.Info("Container ready",
		"provider", app.LLM.Provider,
		"model", app.LLM.Model,
		"backend", string(app.Agent.Backend),
		"glossaryTerms", len(terms.Entries()))

	return &Container{
		RunID:    runID,
		Logger:   log,
		Glossary: terms,
		Tools:    tools,
		Runner:   runner,
		Analyzer: analyzer.New(runner, tools, log, prompts.DefaultSystemPrompt),
	}, nil
}

func newRunner(app *config.Config, log output.LoggerPort, progress output.ProgressPort) (output.AgentRunner, error) {
	var httpClient *http.Client
	if app.LLM.LogHTTP {
		httpClient = openai.NewHTTPClient(nil, log)
	}

	switch app.Agent.Backend {
	case entity.AgentBackendLangChain:
		model, err := langchain.NewOpenAIModel(langchain.ModelConfig{
			APIKey:     app.LLM.APIKey,
			Model:      app.LLM.Model,
			BaseURL:    app.LLM.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		return langchain.New(model, log, progress, langchain.Config{
			MaxIterations: app.Agent.MaxIterations,
			Temperature:   app.LLM.Temperature,
		}), nil

	case entity.AgentBackendNative, "":
		llm, err := newLLM(app, log, httpClient)
		if err != nil {
			return nil, err
		}
		return executor.New(llm, log, progress, executor.Config{
			MaxIterations: app.Agent.MaxIterations,
			Temperature:   app.LLM.Temperature,
		}), nil
	}

	return nil, fmt.Errorf("unknown agent backend %q", app.Agent.Backend)
}

func newLLM(app *config.Config, log output.LoggerPort, httpClient *http.Client) (output.LLMPort, error) {
	switch app.LLM.Provider {
	case config.ProviderAnthropic:
		return anthropic.NewAdapter(anthropic.Config{
			APIKey:     app.LLM.APIKey,
			Model:      app.LLM.Model,
			BaseURL:    app.LLM.BaseURL,
			MaxTokens:  app.LLM.MaxTokens,
			HTTPClient: httpClient,
		}), nil

	case config.ProviderOpenAI, "":
		cfg := openai.DefaultConfig(app.LLM.APIKey, app.LLM.Model)
		if app.LLM.BaseURL != "" {
			cfg.BaseURL = app.LLM.BaseURL
		}
		if app.LLM.LogHTTP {
			cfg.Logger = log
		}
		return openai.NewAdapter(cfg), nil
	}

	return nil, fmt.Errorf("unknown llm provider %q", app.LLM.Provider)
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
