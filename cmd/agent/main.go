package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"requirements-agent/internal/di"
	"requirements-agent/internal/infrastructure/config"
	"requirements-agent/internal/infrastructure/env"
	"requirements-agent/internal/infrastructure/prompts"
	"requirements-agent/internal/infrastructure/userinteraction"
)

func main() {
	envFiles := env.Load()

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			log.Fatalf("Erro: %v", err)
		}
		log.Fatalf("Erro de configuração: %v", err)
	}

	requirements, err := readRequirements(os.Stdin, isTerminal(os.Stdin))
	if err != nil {
		log.Fatalf("Erro ao ler os requisitos: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	console := userinteraction.NewConsole(os.Stdout, cfg.Output.RenderMarkdown)

	container, err := di.NewContainer(di.Config{
		App:      cfg,
		Progress: console,
	})
	if err != nil {
		log.Fatalf("Erro de inicialização: %v", err)
	}
	defer container.Close()

	container.Logger.Debug("Environment loaded", "files", envFiles)

	fmt.Println("Analisando os requisitos...")

	result, err := container.Analyzer.Analyze(ctx, requirements)
	if err != nil {
		container.Logger.Error("Analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "\nErro ao gerar a especificação: %v\n", err)
		container.Close()
		os.Exit(1)
	}

	if err := console.PrintSpecification(result.Specification); err != nil {
		container.Logger.Error("Print failed", "error", err)
		container.Close()
		os.Exit(1)
	}
}

// readRequirements reads piped input, falling back to the built-in example
// when stdin is a terminal or the pipe is empty.
func readRequirements(r io.Reader, terminal bool) (string, error) {
	if terminal {
		return prompts.DefaultRequirements, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text, nil
	}
	return prompts.DefaultRequirements, nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err != nil || info.Mode()&os.ModeCharDevice != 0
}
