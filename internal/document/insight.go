package document

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"profilebot/internal/cache"
	"profilebot/internal/llm"
)

// Insight generation reads only the first maxInsightChars characters of a
// document to bound cost and latency.
const maxInsightChars = 3000

const defaultInsightTTL = 24 * time.Hour

// InsightGenerator produces the summary/keywords pair for a document.
// Generation failures are absorbed here: a missing insight must never block
// a document from being searchable by its raw content or filename.
type InsightGenerator struct {
	llm   llm.Client
	cache cache.Cache
	log   *slog.Logger
	ttl   time.Duration
}

// NewInsightGenerator wires a generator. cache may be nil; a no-op cache is
// substituted.
func NewInsightGenerator(client llm.Client, c cache.Cache, log *slog.Logger) *InsightGenerator {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &InsightGenerator{llm: client, cache: c, log: log, ttl: defaultInsightTTL}
}

// Generate returns (summary, keywords) and never fails. On any LLM or
// parsing error it returns the filename-based placeholder with no keywords.
func (g *InsightGenerator) Generate(ctx context.Context, filename, content, contentHash string) (string, []string) {
	fallback := "Document: " + filename

	if cached, err := g.cache.GetInsight(ctx, contentHash); err != nil {
		g.log.Warn("insight cache lookup failed", "filename", filename, "err", err)
	} else if cached != nil {
		return cached.Summary, orEmpty(cached.Keywords)
	}

	insight, err := g.llm.GenerateInsights(ctx, filename, truncateChars(content, maxInsightChars))
	if err != nil {
		g.log.Warn("insight generation failed; using fallback", "filename", filename, "err", err)
		return fallback, []string{}
	}

	if err := g.cache.SetInsight(ctx, contentHash, insight, g.ttl); err != nil {
		g.log.Warn("insight cache store failed", "filename", filename, "err", err)
	}
	return insight.Summary, orEmpty(insight.Keywords)
}

func orEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}

// truncateChars limits s to n characters, not bytes, so a multi-byte rune is
// never split.
func truncateChars(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
