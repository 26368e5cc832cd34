package prompts

import (
	"bytes"
	"text/template"

	"requirements-agent/internal/domain/entity"
)

type UserPromptData struct {
	Requirements string
}

var userTemplate = template.Must(template.New("user").Parse(UserPromptTemplate))

// GenerateUserPrompt embeds the requirements text verbatim in the user turn.
func GenerateUserPrompt(requirements string) (string, error) {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, UserPromptData{Requirements: requirements}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildConversation returns the two-turn conversation sent to the model:
// the system instruction followed by the user turn carrying the requirements.
func BuildConversation(systemPrompt, requirements string) ([]entity.Message, error) {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	user, err := GenerateUserPrompt(requirements)
	if err != nil {
		return nil, err
	}

	return []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: user},
	}, nil
}
