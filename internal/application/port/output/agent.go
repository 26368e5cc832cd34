package output

import (
	"context"

	"requirements-agent/internal/domain/entity"
)

// AgentRunner drives a conversation to a final answer, letting the model
// call the registered tools along the way.
type AgentRunner interface {
	Run(ctx context.Context, conversation []entity.Message, tools ToolRegistry) (*entity.AgentResult, error)
}
