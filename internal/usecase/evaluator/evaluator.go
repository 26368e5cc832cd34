package evaluator

import (
	"strings"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"
)

// Evaluator checks a generated specification for the section headers the
// system prompt asks for. It never changes the text.
type Evaluator struct {
	logger output.LoggerPort
}

func New(logger output.LoggerPort) *Evaluator {
	return &Evaluator{logger: logger}
}

func (e *Evaluator) Evaluate(specification string) *entity.EvaluationResult {
	normalized := normalize(specification)

	result := &entity.EvaluationResult{
		Present: []string{},
		Missing: []string{},
	}
	for _, section := range entity.SpecificationSections() {
		if strings.Contains(normalized, sectionKey(section)) {
			result.Present = append(result.Present, section)
		} else {
			result.Missing = append(result.Missing, section)
		}
	}
	result.Success = len(result.Missing) == 0

	if result.Success {
		e.logger.Info("Evaluation completed", "success", true, "sections", len(result.Present))
	} else {
		e.logger.Warn("Specification is missing sections",
			"missing", result.Missing,
			"present", len(result.Present),
		)
	}

	return result
}

// sectionKey drops the parenthesised qualifier, so "Lacunas detectadas" matches
// without "(se houver)".
func sectionKey(section string) string {
	if i := strings.Index(section, "("); i >= 0 {
		section = section[:i]
	}
	return normalize(section)
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " / ", "/")
	return strings.Join(strings.Fields(s), " ")
}
