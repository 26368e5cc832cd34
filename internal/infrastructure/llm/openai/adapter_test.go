package openai

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"
	"requirements-agent/internal/infrastructure/logger"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	msg := goopenai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "## Requisitos Funcionais",
	}

	result := convertResponseMessage(msg)

	assert.Equal(t, entity.RoleAssistant, result.Role)
	assert.Equal(t, "## Requisitos Funcionais", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	msg := goopenai.ChatCompletionMessage{
		Role: "assistant",
		ToolCalls: []goopenai.ToolCall{
			{
				ID:   "call_123",
				Type: goopenai.ToolTypeFunction,
				Function: goopenai.FunctionCall{
					Name:      "TermLookup",
					Arguments: `{"term":"ISO27001"}`,
				},
			},
		},
	}

	result := convertResponseMessage(msg)

	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_123", result.ToolCalls[0].ID)
	assert.Equal(t, "TermLookup", result.ToolCalls[0].Name)
	assert.Equal(t, `{"term":"ISO27001"}`, result.ToolCalls[0].Arguments)
}

func TestConvertMessages_ToolRoundTrip(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: "system"},
		{Role: entity.RoleUser, Content: "Hello"},
		{
			Role:      entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{{ID: "c1", Name: "TermLookup", Arguments: `{"term":"x"}`}},
		},
		{Role: entity.RoleTool, ToolCallID: "c1", Name: "TermLookup", Content: "def"},
	}

	result := convertMessages(messages)

	require.Len(t, result, 4)
	assert.Equal(t, "system", result[0].Role)
	assert.Equal(t, "user", result[1].Role)
	require.Len(t, result[2].ToolCalls, 1)
	assert.Equal(t, goopenai.ToolTypeFunction, result[2].ToolCalls[0].Type)
	assert.Equal(t, "TermLookup", result[2].ToolCalls[0].Function.Name)
	assert.Equal(t, "tool", result[3].Role)
	assert.Equal(t, "c1", result[3].ToolCallID)
	assert.Equal(t, "def", result[3].Content)
}

func TestWireTemperature(t *testing.T) {
	assert.Equal(t, float32(math.SmallestNonzeroFloat32), wireTemperature(0))
	assert.Equal(t, float32(0.7), wireTemperature(0.7))
}

func TestAdapterChat_AgainstFakeServer(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "gpt-4o-mini",
			"choices": [{
				"index": 0,
				"finish_reason": "tool_calls",
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{"id": "call_1", "type": "function", "function": {"name": "TermLookup", "arguments": "{\"term\":\"usabilidade\"}"}}]
				}
			}]
		}`)
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := DefaultConfig("sk-test", "gpt-4o-mini")
	cfg.BaseURL = server.URL
	cfg.Logger = logger.NewWithCore(core)
	adapter := NewAdapter(cfg)

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "oi"}},
		Tools: []entity.ToolDefinition{{
			Name:        "TermLookup",
			Description: "glossary",
			Parameters:  map[string]interface{}{"type": "object"},
		}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "TermLookup", resp.Message.ToolCalls[0].Name)

	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Equal(t, "auto", body["tool_choice"])
	assert.Contains(t, body, "temperature")
	assert.Len(t, body["tools"], 1)

	assert.Equal(t, 2, logs.FilterMessageSnippet("HTTP").Len())
}

func TestAdapterChat_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	defer server.Close()

	cfg := DefaultConfig("sk-test", "m")
	cfg.BaseURL = server.URL
	adapter := NewAdapter(cfg)

	_, err := adapter.Chat(context.Background(), output.ChatRequest{})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestAdapterChat_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	cfg := DefaultConfig("bad", "m")
	cfg.BaseURL = server.URL
	adapter := NewAdapter(cfg)

	_, err := adapter.Chat(context.Background(), output.ChatRequest{})
	require.Error(t, err)

	var apiErr *goopenai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
}
