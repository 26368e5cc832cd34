package input

import "context"

type AnalyzeResult struct {
	Specification string
	Iterations    int
	ToolCalls     int
	// MissingSections lists expected headers absent from Specification.
	MissingSections []string
}

type RequirementsAnalyzer interface {
	Analyze(ctx context.Context, requirements string) (*AnalyzeResult, error)
}
