package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"profilebot/internal/cache"
	"profilebot/internal/chat"
	"profilebot/internal/config"
	"profilebot/internal/document"
	"profilebot/internal/llm"
	"profilebot/internal/logger"
	"profilebot/internal/queue"
	"profilebot/internal/store"
)

// Deps bundles the server's runtime dependencies.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Store    store.Store
	Cache    cache.Cache
	Queue    queue.Queue
	LLM      llm.Client
	Registry *document.Registry
	Chat     *chat.Service
}

// WorkerDeps is the trimmed bundle for queue workers.
type WorkerDeps struct {
	Config config.Config
	Log    *slog.Logger
	Store  store.Store
	Queue  queue.Queue
}

// Build loads env and wires every component the API server needs.
func Build() (Deps, error) {
	cfg, log := loadBase()

	st, err := buildStore(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	c := buildCache(cfg, log)

	insights := document.NewInsightGenerator(llmClient, c, log)
	registry := document.NewRegistry(cfg.DocumentsDir, insights, log)
	chatSvc := chat.NewService(llmClient, st, registry, q, log, chat.Persona{
		Name:  cfg.PersonaName,
		Title: cfg.PersonaTitle,
	})

	return Deps{
		Config:   cfg,
		Log:      log,
		Store:    st,
		Cache:    c,
		Queue:    q,
		LLM:      llmClient,
		Registry: registry,
		Chat:     chatSvc,
	}, nil
}

// BuildWorker wires only config, store, and queue for worker processes.
func BuildWorker() (WorkerDeps, error) {
	cfg, log := loadBase()

	st, err := buildStore(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	q, err := buildQueue(cfg, log)
	if err != nil {
		return WorkerDeps{}, fmt.Errorf("failed to initialize queue: %w", err)
	}
	return WorkerDeps{Config: cfg, Log: log, Store: st, Queue: q}, nil
}

func loadBase() (config.Config, *slog.Logger) {
	// .env is a local convenience; absence is not an error.
	_ = godotenv.Load()
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel)
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	db, err := store.NewPostgres(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	log.Info("using Postgres store")
	return db, nil
}

func buildQueue(cfg config.Config, log *slog.Logger) (queue.Queue, error) {
	if cfg.QueueURL == "" {
		return nil, fmt.Errorf("QUEUE_URL is required")
	}
	nc, err := nats.Connect(cfg.QueueURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("using NATS queue")
	return queue.NewNATS(log, nc), nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	client, err := llm.NewOpenAIClient(cfg.OpenAIKey,
		openai.ChatModel(cfg.ChatModel), openai.ChatModel(cfg.InsightModel), cfg.ChatTemp)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	log.Info("using OpenAI LLM client", "chat_model", cfg.ChatModel, "insight_model", cfg.InsightModel)
	return client, nil
}

// buildCache prefers Redis and falls back to a no-op cache so a missing
// Redis never blocks document processing.
func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		log.Info("no REDIS_ADDR configured; insight cache disabled")
		return cache.NewNoOpCache()
	}
	c, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn("redis unavailable; insight cache disabled", "err", err)
		return cache.NewNoOpCache()
	}
	log.Info("using Redis insight cache", "addr", cfg.RedisAddr)
	return c
}
