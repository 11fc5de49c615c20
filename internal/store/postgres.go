package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// PostgresStore persists chatbot state in Postgres via database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres opens a connection pool and runs migrations.
func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock keeps concurrent service starts from racing on DDL.
	const lockID = 620041817

	var acquired bool
	if err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another service is migrating; wait briefly and skip.
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			user_message TEXT NOT NULL,
			bot_response TEXT NOT NULL,
			user_ip TEXT,
			user_agent TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id BIGSERIAL PRIMARY KEY,
			name TEXT,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			company TEXT,
			position TEXT,
			notes TEXT,
			interest_level INT DEFAULT 5,
			source TEXT DEFAULT 'chatbot',
			created_at TIMESTAMPTZ DEFAULT now(),
			last_contacted TIMESTAMPTZ,
			status TEXT DEFAULT 'new'
		);`,
		`CREATE TABLE IF NOT EXISTS analytics_events (
			id BIGSERIAL PRIMARY KEY,
			event_type TEXT NOT NULL,
			event_data JSONB,
			session_id TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS unknown_questions (
			id BIGSERIAL PRIMARY KEY,
			question TEXT NOT NULL UNIQUE,
			frequency INT DEFAULT 1,
			first_asked TIMESTAMPTZ DEFAULT now(),
			last_asked TIMESTAMPTZ DEFAULT now(),
			resolved BOOLEAN DEFAULT FALSE
		);`,
		`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT NOT NULL UNIQUE,
			file_path TEXT NOT NULL,
			file_type TEXT NOT NULL,
			content_summary TEXT,
			keywords TEXT[],
			content_hash TEXT,
			processed_at TIMESTAMPTZ DEFAULT now(),
			status TEXT DEFAULT 'active'
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) LogConversation(ctx context.Context, c Conversation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations(session_id, user_message, bot_response, user_ip, user_agent)
		 VALUES($1,$2,$3,$4,$5)`,
		c.SessionID, c.UserMessage, c.BotResponse, nullable(c.UserIP), nullable(c.UserAgent))
	return err
}

func (s *PostgresStore) UpsertContact(ctx context.Context, c Contact) error {
	if c.InterestLevel == 0 {
		c.InterestLevel = 5
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts(name, email, phone, company, position, notes, interest_level, last_contacted)
		 VALUES($1,$2,$3,$4,$5,$6,$7,now())
		 ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			company = EXCLUDED.company,
			position = EXCLUDED.position,
			notes = EXCLUDED.notes,
			interest_level = EXCLUDED.interest_level,
			last_contacted = now()`,
		nullable(c.Name), c.Email, nullable(c.Phone), nullable(c.Company),
		nullable(c.Position), nullable(c.Notes), c.InterestLevel)
	return err
}

func (s *PostgresStore) LogEvent(ctx context.Context, e Event) error {
	var data any
	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return err
		}
		data = raw
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analytics_events(event_type, event_data, session_id) VALUES($1,$2,$3)`,
		e.Type, data, nullable(e.SessionID))
	return err
}

func (s *PostgresStore) RecordUnknownQuestion(ctx context.Context, question string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO unknown_questions(question) VALUES($1)
		 ON CONFLICT (question) DO UPDATE SET
			frequency = unknown_questions.frequency + 1,
			last_asked = now()`,
		question)
	return err
}

func (s *PostgresStore) AnalyticsSummary(ctx context.Context, days int) (AnalyticsSummary, error) {
	if days <= 0 {
		days = 7
	}
	summary := AnalyticsSummary{PeriodDays: days}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT session_id) FROM conversations
		 WHERE created_at >= now() - $1 * INTERVAL '1 day'`, days).
		Scan(&summary.TotalConversations, &summary.UniqueVisitors)
	if err != nil {
		return AnalyticsSummary{}, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE created_at >= now() - $1 * INTERVAL '1 day'`, days).
		Scan(&summary.NewContacts)
	if err != nil {
		return AnalyticsSummary{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT question, frequency FROM unknown_questions
		 ORDER BY frequency DESC, last_asked DESC LIMIT 5`)
	if err != nil {
		return AnalyticsSummary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var qc QuestionCount
		if err := rows.Scan(&qc.Question, &qc.Frequency); err != nil {
			return AnalyticsSummary{}, err
		}
		summary.CommonUnknownQuestions = append(summary.CommonUnknownQuestions, qc)
	}
	return summary, rows.Err()
}

func (s *PostgresStore) RecentContacts(ctx context.Context, limit int) ([]Contact, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(name,''), email, COALESCE(company,''), COALESCE(position,''), interest_level, created_at
		 FROM contacts ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.Name, &c.Email, &c.Company, &c.Position, &c.InterestLevel, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (s *PostgresStore) SaveDocumentMeta(ctx context.Context, m DocumentMeta) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(filename, file_path, file_type, content_summary, keywords, content_hash, processed_at)
		 VALUES($1,$2,$3,$4,$5,$6,now())
		 ON CONFLICT (filename) DO UPDATE SET
			file_path = EXCLUDED.file_path,
			file_type = EXCLUDED.file_type,
			content_summary = EXCLUDED.content_summary,
			keywords = EXCLUDED.keywords,
			content_hash = EXCLUDED.content_hash,
			processed_at = now()`,
		m.Filename, m.Path, m.FileType, nullable(m.Summary), pq.Array(m.Keywords), nullable(m.ContentHash))
	return err
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// nullable maps empty strings to SQL NULL.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
