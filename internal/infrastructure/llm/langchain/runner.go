// Package langchain runs the requirements conversation through langchaingo's
// zero-shot ReAct agent instead of native function calling.
package langchain

import (
	"context"
	"fmt"
	"net/http"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var _ output.AgentRunner = (*Runner)(nil)

const toolsSection = "\n\nVocê tem acesso às seguintes ferramentas:\n\n{{.tool_descriptions}}"

type ModelConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewOpenAIModel(cfg ModelConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(cfg.HTTPClient))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain openai model: %w", err)
	}
	return llm, nil
}

type Config struct {
	MaxIterations int
	Temperature   float32
}

type Runner struct {
	model    llms.Model
	logger   output.LoggerPort
	progress output.ProgressPort
	cfg      Config
}

// New builds a ReAct runner over model. progress may be nil.
func New(model llms.Model, logger output.LoggerPort, progress output.ProgressPort, cfg Config) *Runner {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 15
	}
	return &Runner{
		model:    model,
		logger:   logger,
		progress: progress,
		cfg:      cfg,
	}
}

// Run uses the system message as the agent's prompt prefix and the last user
// message as its input. Tool errors are returned to the model as observations.
func (r *Runner) Run(ctx context.Context, conversation []entity.Message, tools output.ToolRegistry) (*entity.AgentResult, error) {
	state := &runState{}
	handler := newCallbackHandler(r.logger, r.progress)
	model := &countingModel{Model: r.model, state: state}

	lcTools := adaptTools(tools.All(), state, r.progress)

	agent := agents.NewOneShotAgent(model, lcTools,
		agents.WithPromptPrefix(entity.SystemPrompt(conversation)+toolsSection),
		agents.WithCallbacksHandler(handler),
	)
	executor := agents.NewExecutor(agent,
		agents.WithMaxIterations(r.cfg.MaxIterations),
		agents.WithParserErrorHandler(agents.NewParserErrorHandler(nil)),
		agents.WithCallbacksHandler(handler),
	)

	answer, err := chains.Run(ctx, executor, entity.LastUserMessage(conversation),
		chains.WithTemperature(float64(r.cfg.Temperature)),
	)
	if err != nil {
		return nil, fmt.Errorf("langchain agent failed: %w", err)
	}

	return &entity.AgentResult{
		FinalAnswer: answer,
		Iterations:  state.llmCalls,
		ToolCalls:   state.toolCalls,
	}, nil
}

type runState struct {
	llmCalls  int
	toolCalls int
}

type countingModel struct {
	llms.Model
	state *runState
}

func (m *countingModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.state.llmCalls++
	return m.Model.GenerateContent(ctx, messages, options...)
}

func (m *countingModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
