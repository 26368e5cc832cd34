package tool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"
)

var _ output.ToolPort = (*TermLookupTool)(nil)

var ErrEmptyTerm = errors.New("term is required")

const termLookupDescription = "Use esta ferramenta para obter definicoes de termos relacionados a engenharia de software. Informe o termo como entrada."

type termLookupInput struct {
	Term string `json:"term" jsonschema:"description=Termo de engenharia de software a ser definido"`
}

type TermLookupTool struct {
	glossary output.GlossaryPort
	logger   output.LoggerPort
	schema   map[string]interface{}
}

func NewTermLookupTool(glossary output.GlossaryPort, logger output.LoggerPort) *TermLookupTool {
	return &TermLookupTool{
		glossary: glossary,
		logger:   logger,
		schema:   GenerateSchema[termLookupInput](),
	}
}

func (t *TermLookupTool) Name() entity.ToolName { return entity.ToolTermLookup }
func (t *TermLookupTool) Description() string   { return termLookupDescription }
func (t *TermLookupTool) Parameters() map[string]interface{} {
	return t.schema
}

// Execute accepts either {"term": "..."} or the bare term, since ReAct style
// runtimes hand tools the raw action input.
func (t *TermLookupTool) Execute(ctx context.Context, args string) (string, error) {
	term := parseTerm(args)
	if term == "" {
		return "", ErrEmptyTerm
	}

	definition := t.glossary.Lookup(term)
	t.logger.Debug("Term looked up", "term", term, "definition", definition)
	return definition, nil
}

func parseTerm(args string) string {
	args = strings.TrimSpace(args)

	var input termLookupInput
	if strings.HasPrefix(args, "{") {
		if err := json.Unmarshal([]byte(args), &input); err == nil {
			return strings.TrimSpace(input.Term)
		}
	}

	return strings.Trim(args, "\"'` \n\t")
}
