package prompts

import (
	_ "embed"
)

//go:embed system.txt
var DefaultSystemPrompt string

//go:embed user.txt
var UserPromptTemplate string

// DefaultRequirements is the sample input used when nothing is piped in.
//
//go:embed example_requirements.txt
var DefaultRequirements string
