package langchain

import (
	"context"

	"requirements-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/schema"
)

var _ callbacks.Handler = (*callbackHandler)(nil)

// callbackHandler logs the agent's reasoning trace.
type callbackHandler struct {
	callbacks.SimpleHandler
	logger   output.LoggerPort
	progress output.ProgressPort
}

func newCallbackHandler(logger output.LoggerPort, progress output.ProgressPort) *callbackHandler {
	return &callbackHandler{logger: logger, progress: progress}
}

func (h *callbackHandler) HandleAgentAction(ctx context.Context, action schema.AgentAction) {
	h.logger.Info("Agent action", "tool", action.Tool, "input", action.ToolInput)
	h.logger.Debug("Agent thought", "log", action.Log)
	if h.progress != nil {
		h.progress.ShowToolStart(ctx, action.Tool, action.ToolInput)
	}
}

func (h *callbackHandler) HandleAgentFinish(ctx context.Context, finish schema.AgentFinish) {
	h.logger.Debug("Agent finished", "log", finish.Log)
}

func (h *callbackHandler) HandleLLMError(ctx context.Context, err error) {
	h.logger.Error("LLM call failed", "error", err)
}

func (h *callbackHandler) HandleChainError(ctx context.Context, err error) {
	h.logger.Warn("Chain error", "error", err)
}
