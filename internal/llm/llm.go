package llm

import "context"

// Message roles understood by the chat API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Insight is the AI-generated summary/keywords pair for a document.
type Insight struct {
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

// Message is one entry in a chat transcript.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall // assistant messages only
	ToolCallID string     // tool messages only
}

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON
}

// Tool describes a callable function exposed to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON schema
}

// Reply is the assistant's turn: content, tool calls, or both.
type Reply struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is a minimal LLM interface to allow pluggable providers.
type Client interface {
	// GenerateInsights asks for a JSON {summary, keywords} object describing
	// the excerpt. Any malformed response is an error; callers decide how to
	// degrade.
	GenerateInsights(ctx context.Context, filename, excerpt string) (Insight, error)

	// Chat runs one completion over the transcript with the given tools.
	Chat(ctx context.Context, messages []Message, tools []Tool) (Reply, error)
}
