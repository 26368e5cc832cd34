package tool

import (
	"context"
	"testing"

	"requirements-agent/internal/domain/entity"
	"requirements-agent/internal/infrastructure/glossary"
	"requirements-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTool() *TermLookupTool {
	return NewTermLookupTool(glossary.New(), logger.NewNop())
}

func TestTermLookupTool_Definition(t *testing.T) {
	tool := newTestTool()

	assert.Equal(t, entity.ToolTermLookup, tool.Name())
	assert.Contains(t, tool.Description(), "engenharia de software")

	params := tool.Parameters()
	assert.Equal(t, "object", params["type"])

	props, ok := params["properties"].(map[string]interface{})
	require.True(t, ok)
	term, ok := props["term"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", term["type"])
	assert.Equal(t, []interface{}{"term"}, params["required"])
}

func TestTermLookupTool_ExecuteJSON(t *testing.T) {
	tool := newTestTool()

	result, err := tool.Execute(context.Background(), `{"term":"ISO27001"}`)

	require.NoError(t, err)
	assert.Equal(t, "Uma norma internacional de segurança da informação.", result)
}

func TestTermLookupTool_ExecuteRawInput(t *testing.T) {
	tool := newTestTool()

	tests := []struct {
		name string
		args string
		want string
	}{
		{"plain", "usabilidade", "A facilidade com que um usuário pode interagir com um sistema para atingir um objetivo específico."},
		{"quoted", `"Requisito Funcional"`, "Uma funcionalidade que o sistema deve fornecer."},
		{"unknown", "paridade", "Não encontrei uma definição para o termo 'paridade'."},
		{"broken json falls back to raw", `{term`, "Não encontrei uma definição para o termo '{term'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tool.Execute(context.Background(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
		})
	}
}

func TestTermLookupTool_EmptyTerm(t *testing.T) {
	tool := newTestTool()

	_, err := tool.Execute(context.Background(), `{"term":"  "}`)
	assert.ErrorIs(t, err, ErrEmptyTerm)

	_, err = tool.Execute(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyTerm)
}
