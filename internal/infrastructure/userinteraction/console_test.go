package userinteraction

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestConsole_PrintSpecificationVerbatim(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	text := "## Requisitos Funcionais\n- O sistema deve permitir login.\n"
	require.NoError(t, c.PrintSpecification(text))

	assert.Equal(t, "\n"+SpecificationHeader+"\n"+text+"\n", buf.String())
}

func TestConsole_PrintSpecificationRendered(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	require.NoError(t, c.PrintSpecification("## Requisitos Funcionais\n\n- login"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\n"+SpecificationHeader+"\n"))
	assert.Contains(t, out, "Requisitos Funcionais")
	assert.Contains(t, out, "login")
}

func TestConsole_ToolProgress(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)
	ctx := context.Background()

	c.ShowIteration(ctx, 1, 15)
	c.ShowToolStart(ctx, "TermLookup", `{"term":"usabilidade"}`)
	c.ShowToolResult(ctx, "TermLookup", "definição", false)
	c.ShowToolResult(ctx, "TermLookup", "term is required", true)

	out := buf.String()
	assert.Contains(t, out, "Iteração 1/15")
	assert.Contains(t, out, "🔧 TermLookup")
	assert.Contains(t, out, `Entrada: {"term":"usabilidade"}`)
	assert.Contains(t, out, "✓ definição")
	assert.Contains(t, out, "❌ Erro: term is required")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "a b", truncate("a\nb", 5))
}
