package analyzer

import (
	"context"
	"fmt"
	"time"

	"requirements-agent/internal/application/port/input"
	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/infrastructure/prompts"
	"requirements-agent/internal/usecase/evaluator"
)

var _ input.RequirementsAnalyzer = (*UseCase)(nil)

type UseCase struct {
	runner       output.AgentRunner
	tools        output.ToolRegistry
	evaluator    *evaluator.Evaluator
	logger       output.LoggerPort
	systemPrompt string
}

func New(
	runner output.AgentRunner,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
) *UseCase {
	return &UseCase{
		runner:       runner,
		tools:        tools,
		evaluator:    evaluator.New(logger),
		logger:       logger,
		systemPrompt: systemPrompt,
	}
}

// Analyze turns free-form requirements into a Markdown specification. The
// agent runner decides on its own whether to consult the tools.
func (uc *UseCase) Analyze(ctx context.Context, requirements string) (*input.AnalyzeResult, error) {
	conversation, err := prompts.BuildConversation(uc.systemPrompt, requirements)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	start := time.Now()
	uc.logger.Info("Analysis started", "requirementsLen", len(requirements))

	result, err := uc.runner.Run(ctx, conversation, uc.tools)
	if err != nil {
		uc.logger.Error("Analysis failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("agent run failed: %w", err)
	}

	uc.logger.Info("Analysis completed",
		"iterations", result.Iterations,
		"toolCalls", result.ToolCalls,
		"outputLen", len(result.FinalAnswer),
		"duration_ms", time.Since(start).Milliseconds())

	evaluation := uc.evaluator.Evaluate(result.FinalAnswer)

	return &input.AnalyzeResult{
		Specification:   result.FinalAnswer,
		Iterations:      result.Iterations,
		ToolCalls:       result.ToolCalls,
		MissingSections: evaluation.Missing,
	}, nil
}
