package store

import (
	"context"
	"time"
)

// Analytics event types emitted by the chat service and upload flow.
const (
	EventMessageExchange  = "message_exchange"
	EventContactRecorded  = "contact_recorded"
	EventUnknownQuestion  = "unknown_question"
	EventDocumentUploaded = "document_uploaded"
)

// Conversation is one user/assistant exchange within a session.
type Conversation struct {
	SessionID   string
	UserMessage string
	BotResponse string
	UserIP      string
	UserAgent   string
}

// Contact captures a visitor who showed interest in getting in touch.
// Email is the unique key; recording the same email again updates the row.
type Contact struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Company       string    `json:"company"`
	Position      string    `json:"position"`
	Notes         string    `json:"notes,omitempty"`
	InterestLevel int       `json:"interest_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// Event is one analytics event.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
}

// QuestionCount pairs an unanswered question with how often it was asked.
type QuestionCount struct {
	Question  string `json:"question"`
	Frequency int    `json:"frequency"`
}

// AnalyticsSummary aggregates activity over the trailing period.
type AnalyticsSummary struct {
	TotalConversations     int             `json:"total_conversations"`
	UniqueVisitors         int             `json:"unique_visitors"`
	NewContacts            int             `json:"new_contacts"`
	CommonUnknownQuestions []QuestionCount `json:"common_unknown_questions"`
	PeriodDays             int             `json:"period_days"`
}

// DocumentMeta is the persisted metadata for a processed document. The full
// text and the in-memory index are never persisted; the content hash exists
// for external change detection.
type DocumentMeta struct {
	Filename    string
	Path        string
	FileType    string
	Summary     string
	Keywords    []string
	ContentHash string
}

// Store defines the persistence contract for conversations, contacts,
// analytics, and document metadata.
type Store interface {
	LogConversation(ctx context.Context, c Conversation) error
	UpsertContact(ctx context.Context, c Contact) error
	LogEvent(ctx context.Context, e Event) error
	RecordUnknownQuestion(ctx context.Context, question string) error
	AnalyticsSummary(ctx context.Context, days int) (AnalyticsSummary, error)
	RecentContacts(ctx context.Context, limit int) ([]Contact, error)
	SaveDocumentMeta(ctx context.Context, m DocumentMeta) error
}
