package executor

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"
)

var _ output.AgentRunner = (*UseCase)(nil)

const (
	DefaultMaxIterations = 15
	maxObservationLen    = 20000
)

var ErrMaxIterations = errors.New("max iterations exceeded")

type Config struct {
	MaxIterations int
	Temperature   float32
}

type UseCase struct {
	llm      output.LLMPort
	logger   output.LoggerPort
	progress output.ProgressPort
	cfg      Config
}

// New builds the tool-calling runner. progress may be nil.
func New(
	llm output.LLMPort,
	logger output.LoggerPort,
	progress output.ProgressPort,
	cfg Config,
) *UseCase {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	return &UseCase{
		llm:      llm,
		logger:   logger,
		progress: progress,
		cfg:      cfg,
	}
}

// Run sends the conversation until the model answers without tool calls.
// That answer is returned untouched.
func (uc *UseCase) Run(ctx context.Context, conversation []entity.Message, tools output.ToolRegistry) (*entity.AgentResult, error) {
	messages := make([]entity.Message, len(conversation), len(conversation)+4)
	copy(messages, conversation)

	toolDefs := tools.Definitions()
	toolCalls := 0

	for iteration := 1; iteration <= uc.cfg.MaxIterations; iteration++ {
		uc.logger.Debug("Starting iteration", "iteration", iteration)
		if uc.progress != nil {
			uc.progress.ShowIteration(ctx, iteration, uc.cfg.MaxIterations)
		}

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: uc.cfg.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return &entity.AgentResult{
				FinalAnswer: resp.Message.Content,
				Iterations:  iteration,
				ToolCalls:   toolCalls,
			}, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			toolCalls++
			observation := uc.executeTool(ctx, tools, tc)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("%w (%d)", ErrMaxIterations, uc.cfg.MaxIterations)
}

func (uc *UseCase) executeTool(ctx context.Context, tools output.ToolRegistry, tc entity.ToolCall) string {
	if uc.progress != nil {
		uc.progress.ShowToolStart(ctx, tc.Name, tc.Arguments)
	}

	tool, ok := tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		observation := fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, observation, true)
		}
		return observation
	}

	uc.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		if uc.progress != nil {
			uc.progress.ShowToolResult(ctx, tc.Name, err.Error(), true)
		}
		return "Error: " + err.Error()
	}

	result = truncateObservation(result)

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	if uc.progress != nil {
		uc.progress.ShowToolResult(ctx, tc.Name, result, false)
	}
	return result
}

// truncateObservation caps s at maxObservationLen bytes without splitting a rune.
func truncateObservation(s string) string {
	if len(s) <= maxObservationLen {
		return s
	}
	cut := maxObservationLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n... (truncated)"
}
