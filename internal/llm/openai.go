package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	chatModel    openai.ChatModel
	insightModel openai.ChatModel
	temperature  float64
	client       *openai.Client
}

const (
	defaultChatTimeout = 30 * time.Second
	// Insight extraction wants near-deterministic output.
	insightTemperature = 0.3
)

const insightPrompt = `Analyze the following document content from file %q:

%s

Please provide:
1. A concise 2-3 sentence summary
2. 5-8 relevant keywords/topics

Format as JSON:
{
    "summary": "your summary here",
    "keywords": ["keyword1", "keyword2", ...]
}`

// NewOpenAIClient builds a client with defaults against api.openai.com.
func NewOpenAIClient(apiKey string, chatModel, insightModel openai.ChatModel, temperature float64) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if chatModel == "" {
		chatModel = openai.ChatModelGPT4oMini
	}
	if insightModel == "" {
		insightModel = chatModel
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		chatModel:    chatModel,
		insightModel: insightModel,
		temperature:  temperature,
		client:       &cli,
	}, nil
}

func (c *OpenAIClient) GenerateInsights(ctx context.Context, filename, excerpt string) (Insight, error) {
	if c == nil || c.client == nil {
		return Insight{}, fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model: c.insightModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(fmt.Sprintf(insightPrompt, filename, excerpt)),
		},
		Temperature: openai.Float(insightTemperature),
	})
	if err != nil {
		return Insight{}, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Insight{}, fmt.Errorf("openai: no choices returned")
	}
	return ParseInsight(resp.Choices[0].Message.Content)
}

func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, tools []Tool) (Reply, error) {
	if c == nil || c.client == nil {
		return Reply{}, fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:       c.chatModel,
		Messages:    toChatMessages(messages),
		Temperature: openai.Float(c.temperature),
	}
	if len(tools) > 0 {
		params.Tools = toChatTools(tools)
	}

	resp, err := c.client.Chat.Completions.New(reqCtx, params)
	if err != nil {
		return Reply{}, err
	}
	if len(resp.Choices) == 0 {
		return Reply{}, fmt.Errorf("openai: no choices returned")
	}

	msg := resp.Choices[0].Message
	reply := Reply{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return reply, nil
}

// ParseInsight decodes a {summary, keywords} JSON object from model output,
// tolerating surrounding markdown code fences.
func ParseInsight(content string) (Insight, error) {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var insight Insight
	if err := json.Unmarshal([]byte(trimmed), &insight); err != nil {
		return Insight{}, fmt.Errorf("parse insight response: %w", err)
	}
	return insight, nil
}

func toChatMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case RoleTool:
			out = append(out, openai.ToolMessage(m.Content, m.ToolCallID))
		case RoleAssistant:
			out = append(out, assistantMessage(m))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}

func assistantMessage(m Message) openai.ChatCompletionMessageParamUnion {
	if len(m.ToolCalls) == 0 {
		return openai.AssistantMessage(m.Content)
	}
	assistant := openai.ChatCompletionAssistantMessageParam{}
	if m.Content != "" {
		assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: openai.String(m.Content),
		}
	}
	for _, tc := range m.ToolCalls {
		assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
				ID: tc.ID,
				Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}

func toChatTools(tools []Tool) []openai.ChatCompletionToolUnionParam {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        t.Name,
			Description: openai.String(t.Description),
			Parameters:  shared.FunctionParameters(t.Parameters),
		}))
	}
	return out
}
