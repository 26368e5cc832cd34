package evaluator

import (
	"strings"
	"testing"

	"requirements-agent/internal/domain/entity"
	"requirements-agent/internal/infrastructure/logger"
)

func TestEvaluate_AllSections(t *testing.T) {
	e := New(logger.NewNop())

	spec := `## Requisitos Funcionais
- O sistema deve permitir login.

## Requisitos Não Funcionais
- Seguir a ISO27001.

## Sugestões de Melhoria
- Detalhar a autenticação multifator.

## Inconsistências/Lacunas detectadas (se houver)
- Nenhuma.`

	result := e.Evaluate(spec)

	if !result.Success {
		t.Errorf("Expected success, missing %v", result.Missing)
	}
	if len(result.Present) != 4 {
		t.Errorf("Expected 4 present sections, got %d", len(result.Present))
	}
}

func TestEvaluate_MissingSections(t *testing.T) {
	e := New(logger.NewNop())

	result := e.Evaluate("## Requisitos Funcionais\n- login\n\n## Sugestões de Melhoria\n- nada")

	if result.Success {
		t.Error("Expected success=false")
	}

	want := []string{entity.SectionNonFunctional, entity.SectionGaps}
	if strings.Join(result.Missing, "|") != strings.Join(want, "|") {
		t.Errorf("Expected missing %v, got %v", want, result.Missing)
	}
}

func TestEvaluate_TolerantMatching(t *testing.T) {
	e := New(logger.NewNop())

	spec := `**REQUISITOS FUNCIONAIS**
**Requisitos   não funcionais**
### sugestões de melhoria
### Inconsistências / Lacunas detectadas`

	result := e.Evaluate(spec)

	if !result.Success {
		t.Errorf("Expected success, missing %v", result.Missing)
	}
}

func TestEvaluate_NonFunctionalDoesNotSatisfyFunctional(t *testing.T) {
	e := New(logger.NewNop())

	result := e.Evaluate("## Requisitos Não Funcionais")

	if len(result.Present) != 1 || result.Present[0] != entity.SectionNonFunctional {
		t.Errorf("Expected only the non-functional section, got %v", result.Present)
	}
}

func TestEvaluate_Empty(t *testing.T) {
	e := New(logger.NewNop())

	result := e.Evaluate("")

	if result.Success || len(result.Missing) != 4 {
		t.Errorf("Expected all sections missing, got %+v", result)
	}
}
