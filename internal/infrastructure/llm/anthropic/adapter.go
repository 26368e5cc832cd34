package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var _ output.LLMPort = (*Adapter)(nil)

var ErrEmptyResponse = errors.New("empty response from model")

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	HTTPClient *http.Client
}

type Adapter struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func NewAdapter(cfg Config) *Adapter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &Adapter{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	system, messages := convertMessages(req.Messages)

	params := sdk.MessageNewParams{
		Model:       sdk.Model(a.model),
		MaxTokens:   a.maxTokens,
		Messages:    messages,
		System:      system,
		Temperature: sdk.Float(float64(req.Temperature)),
	}
	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}

	result := convertResponse(msg)
	if result.Content == "" && len(result.ToolCalls) == 0 {
		return nil, ErrEmptyResponse
	}
	return &output.ChatResponse{Message: result}, nil
}

// convertMessages splits out system prompts and groups consecutive tool
// results into a single user turn, as the Messages API requires.
func convertMessages(messages []entity.Message) ([]sdk.TextBlockParam, []sdk.MessageParam) {
	var (
		system      []sdk.TextBlockParam
		result      []sdk.MessageParam
		toolResults []sdk.ContentBlockParamUnion
	)

	flush := func() {
		if len(toolResults) > 0 {
			result = append(result, sdk.NewUserMessage(toolResults...))
			toolResults = nil
		}
	}

	for _, msg := range messages {
		switch msg.Role {
		case entity.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: msg.Content})
		case entity.RoleTool:
			toolResults = append(toolResults, sdk.NewToolResultBlock(msg.ToolCallID, msg.Content, false))
		case entity.RoleAssistant:
			flush()
			var blocks []sdk.ContentBlockParamUnion
			if msg.Content != "" {
				blocks = append(blocks, sdk.NewTextBlock(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				args := json.RawMessage(tc.Arguments)
				if !json.Valid(args) {
					args = json.RawMessage(`{}`)
				}
				blocks = append(blocks, sdk.NewToolUseBlock(tc.ID, args, tc.Name))
			}
			result = append(result, sdk.NewAssistantMessage(blocks...))
		default:
			flush()
			result = append(result, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
		}
	}
	flush()

	return system, result
}

func convertTools(tools []entity.ToolDefinition) []sdk.ToolUnionParam {
	result := make([]sdk.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		schema := sdk.ToolInputSchemaParam{
			Properties: t.Parameters["properties"],
			Required:   requiredFields(t.Parameters["required"]),
		}
		result = append(result, sdk.ToolUnionParam{OfTool: &sdk.ToolParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			InputSchema: schema,
		}})
	}
	return result
}

func requiredFields(v interface{}) []string {
	switch req := v.(type) {
	case []string:
		return req
	case []interface{}:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func convertResponse(msg *sdk.Message) entity.Message {
	result := entity.Message{Role: entity.RoleAssistant}

	for _, block := range msg.Content {
		switch block.Type {
		case "text":
			result.Content += block.Text
		case "tool_use":
			result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
				ID:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}

	return result
}
