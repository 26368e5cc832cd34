package userinteraction

import (
	"context"
	"fmt"
	"io"
	"strings"

	"requirements-agent/internal/application/port/output"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

var _ output.ProgressPort = (*Console)(nil)

const SpecificationHeader = "--- Especificação Gerada ---"

type Console struct {
	out    io.Writer
	render bool
}

// NewConsole writes progress and results to out. With render set, the
// specification is rendered as Markdown instead of printed verbatim.
func NewConsole(out io.Writer, render bool) *Console {
	return &Console{out: out, render: render}
}

func (c *Console) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(c.out, "\n━━━ Iteração %d/%d ━━━\n", iteration, maxIterations)
}

func (c *Console) ShowToolStart(ctx context.Context, toolName, arguments string) {
	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(c.out, "\n🔧 %s\n", toolName)

	if arguments = strings.TrimSpace(arguments); arguments != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(c.out, "   Entrada: %s\n", truncate(arguments, 120))
	}
}

func (c *Console) ShowToolResult(ctx context.Context, toolName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(c.out, "❌ Erro: ")

		dim := color.New(color.Faint)
		dim.Fprintln(c.out, truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ %s\n", truncate(result, 300))
}

// PrintSpecification prints the header line followed by the model output.
func (c *Console) PrintSpecification(text string) error {
	bold := color.New(color.Bold)
	if _, err := bold.Fprintf(c.out, "\n%s\n", SpecificationHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if c.render {
		rendered, err := renderMarkdown(text)
		if err != nil {
			return err
		}
		text = rendered
	}

	if _, err := fmt.Fprintln(c.out, text); err != nil {
		return fmt.Errorf("write specification: %w", err)
	}
	return nil
}

func renderMarkdown(text string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
