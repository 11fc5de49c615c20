// Package chat orchestrates the conversational loop: system prompt assembly
// from the document corpus, OpenAI tool calling, and conversation/analytics
// logging.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"profilebot/internal/document"
	"profilebot/internal/llm"
	"profilebot/internal/queue"
	"profilebot/internal/store"
)

// Tool names exposed to the model.
const (
	toolRecordContact   = "record_contact_details"
	toolUnknownQuestion = "record_unknown_question"
	toolSearchDocuments = "search_documents"
)

// Only the best few hits go back to the model.
const maxSearchResults = 3

// Persona describes who the assistant speaks as.
type Persona struct {
	Name  string
	Title string
}

// Message is one prior turn supplied by the caller with a new message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service runs chat exchanges against the LLM with tool support.
type Service struct {
	llm      llm.Client
	store    store.Store
	registry *document.Registry
	queue    queue.Queue
	log      *slog.Logger
	persona  Persona
}

// NewService wires the chat orchestrator.
func NewService(client llm.Client, st store.Store, reg *document.Registry, q queue.Queue, log *slog.Logger, persona Persona) *Service {
	return &Service{llm: client, store: st, registry: reg, queue: q, log: log, persona: persona}
}

// Respond runs one exchange: completion, at most one round of tool
// execution, then the final answer. The exchange is logged to the store and
// a message_exchange analytics event is published; neither failure blocks
// the reply.
func (s *Service) Respond(ctx context.Context, sessionID, userMessage string, history []Message) (string, error) {
	messages := []llm.Message{{Role: llm.RoleSystem, Content: s.systemPrompt()}}
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	reply, err := s.llm.Chat(ctx, messages, toolDefinitions())
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(reply.ToolCalls) > 0 {
		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		})
		for _, call := range reply.ToolCalls {
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    s.executeTool(ctx, sessionID, call),
				ToolCallID: call.ID,
			})
		}
		reply, err = s.llm.Chat(ctx, messages, nil)
		if err != nil {
			return "", fmt.Errorf("chat completion after tools: %w", err)
		}
	}

	answer := reply.Content
	if err := s.store.LogConversation(ctx, store.Conversation{
		SessionID:   sessionID,
		UserMessage: userMessage,
		BotResponse: answer,
	}); err != nil {
		s.log.Error("failed to log conversation", "session_id", sessionID, "err", err)
	}
	s.publishEvent(ctx, store.Event{
		Type:      store.EventMessageExchange,
		SessionID: sessionID,
		Data: map[string]any{
			"user_message_length": len(userMessage),
			"bot_response_length": len(answer),
		},
	})
	return answer, nil
}

// systemPrompt embeds the persona and a summary line per successful document
// so the model knows what the corpus covers. Documents sort by filename to
// keep the prompt stable across restarts.
func (s *Service) systemPrompt() string {
	corpus := s.registry.All()
	names := make([]string, 0, len(corpus))
	for name, rec := range corpus {
		if rec.Failed() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var docContext strings.Builder
	for _, name := range names {
		fmt.Fprintf(&docContext, "**%s**: %s\n", name, corpus[name].Summary)
	}

	return fmt.Sprintf(`You are acting as %[1]s, %[2]s.

You're representing %[1]s on their professional website, helping visitors learn
about their background, skills, and experience. Be professional, engaging, and
helpful.

## Available Documents Context:
%[3]s
## Instructions:
1. Always stay in character as %[1]s
2. Be professional but approachable
3. If asked about specific experiences or skills, search documents for accurate information
4. Guide interesting conversations toward contact exchange
5. Record contact details when users show interest in collaboration, consulting, or hiring
6. If you don't know something specific, record it as an unknown question
7. Mention specific achievements and credentials when relevant`,
		s.persona.Name, s.persona.Title, docContext.String())
}

func toolDefinitions() []llm.Tool {
	return []llm.Tool{
		{
			Name:        toolRecordContact,
			Description: "Record contact details when a user shows interest in getting in touch",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"email":          map[string]any{"type": "string", "description": "User's email address"},
					"name":           map[string]any{"type": "string", "description": "User's name (optional)"},
					"company":        map[string]any{"type": "string", "description": "User's company (optional)"},
					"position":       map[string]any{"type": "string", "description": "User's job position (optional)"},
					"notes":          map[string]any{"type": "string", "description": "Additional conversation context"},
					"interest_level": map[string]any{"type": "integer", "description": "Interest level 1-10, default 5"},
				},
				"required": []string{"email"},
			},
		},
		{
			Name:        toolUnknownQuestion,
			Description: "Record questions that couldn't be answered",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "description": "The question that couldn't be answered"},
				},
				"required": []string{"question"},
			},
		},
		{
			Name:        toolSearchDocuments,
			Description: "Search the profile documents for specific information",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{"type": "string", "description": "Search query for finding relevant information"},
				},
				"required": []string{"query"},
			},
		},
	}
}

// executeTool runs one tool call and returns a JSON payload for the model.
// An unknown tool or bad arguments become an error payload; the exchange
// itself keeps going.
func (s *Service) executeTool(ctx context.Context, sessionID string, call llm.ToolCall) string {
	switch call.Name {
	case toolRecordContact:
		return s.recordContact(ctx, sessionID, call.Arguments)
	case toolUnknownQuestion:
		return s.recordUnknownQuestion(ctx, sessionID, call.Arguments)
	case toolSearchDocuments:
		return s.searchDocuments(call.Arguments)
	default:
		s.log.Warn("model requested unknown tool", "tool", call.Name)
		return toolError(fmt.Sprintf("unknown tool: %s", call.Name))
	}
}

type contactArgs struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Company       string `json:"company"`
	Position      string `json:"position"`
	Notes         string `json:"notes"`
	InterestLevel int    `json:"interest_level"`
}

func (s *Service) recordContact(ctx context.Context, sessionID, rawArgs string) string {
	var args contactArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return toolError("invalid arguments")
	}
	if args.Email == "" {
		return toolError("email is required")
	}
	if args.InterestLevel == 0 {
		args.InterestLevel = 5
	}

	err := s.store.UpsertContact(ctx, store.Contact{
		Name:          args.Name,
		Email:         args.Email,
		Company:       args.Company,
		Position:      args.Position,
		Notes:         args.Notes,
		InterestLevel: args.InterestLevel,
	})
	if err != nil {
		s.log.Error("failed to record contact", "err", err)
	}
	s.publishEvent(ctx, store.Event{
		Type:      store.EventContactRecorded,
		SessionID: sessionID,
		Data:      map[string]any{"email": args.Email, "success": err == nil},
	})
	if err != nil {
		return toolJSON(map[string]any{"status": "error"})
	}
	return toolJSON(map[string]any{"status": "success"})
}

func (s *Service) recordUnknownQuestion(ctx context.Context, sessionID, rawArgs string) string {
	var args struct {
		Question string `json:"question"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil || args.Question == "" {
		return toolError("question is required")
	}
	if err := s.store.RecordUnknownQuestion(ctx, args.Question); err != nil {
		s.log.Error("failed to record unknown question", "err", err)
		return toolJSON(map[string]any{"status": "error"})
	}
	s.publishEvent(ctx, store.Event{
		Type:      store.EventUnknownQuestion,
		SessionID: sessionID,
		Data:      map[string]any{"question": args.Question},
	})
	return toolJSON(map[string]any{"status": "recorded"})
}

func (s *Service) searchDocuments(rawArgs string) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return toolError("invalid arguments")
	}

	results := s.registry.Search(args.Query)
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}
	formatted := make([]map[string]any, 0, len(results))
	for _, r := range results {
		formatted = append(formatted, map[string]any{
			"document":  r.Filename,
			"relevance": r.Score,
			"summary":   r.Summary,
			"keywords":  r.Keywords,
		})
	}
	return toolJSON(map[string]any{"search_results": formatted})
}

// publishEvent ships an analytics event to the queue; failures are logged
// and never fail the exchange.
func (s *Service) publishEvent(ctx context.Context, e store.Event) {
	body, err := json.Marshal(e)
	if err != nil {
		s.log.Error("failed to marshal analytics event", "type", e.Type, "err", err)
		return
	}
	task := queue.Task{Type: queue.TaskTypeEvent, Payload: body, NotBefore: time.Now()}
	if err := queue.EnqueueWithRetry(ctx, s.queue, task, 3, 200*time.Millisecond); err != nil {
		s.log.Error("failed to publish analytics event", "type", e.Type, "err", err)
	}
}

func toolJSON(v any) string {
	body, err := json.Marshal(v)
	if err != nil {
		return `{"error":"internal"}`
	}
	return string(body)
}

func toolError(msg string) string {
	return toolJSON(map[string]any{"error": msg})
}
