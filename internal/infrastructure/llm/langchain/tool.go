package langchain

import (
	"context"

	"requirements-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/tools"
)

var _ tools.Tool = (*toolAdapter)(nil)

type toolAdapter struct {
	tool     output.ToolPort
	state    *runState
	progress output.ProgressPort
}

func adaptTools(ports []output.ToolPort, state *runState, progress output.ProgressPort) []tools.Tool {
	result := make([]tools.Tool, 0, len(ports))
	for _, p := range ports {
		result = append(result, &toolAdapter{tool: p, state: state, progress: progress})
	}
	return result
}

func (t *toolAdapter) Name() string {
	return t.tool.Name().String()
}

func (t *toolAdapter) Description() string {
	return t.tool.Description()
}

// Call never fails: the executor aborts the whole run on a tool error, so
// errors become observations instead.
func (t *toolAdapter) Call(ctx context.Context, input string) (string, error) {
	t.state.toolCalls++

	result, err := t.tool.Execute(ctx, input)
	if err != nil {
		if t.progress != nil {
			t.progress.ShowToolResult(ctx, t.Name(), err.Error(), true)
		}
		return "Error: " + err.Error(), nil
	}

	if t.progress != nil {
		t.progress.ShowToolResult(ctx, t.Name(), result, false)
	}
	return result, nil
}
