package document

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"profilebot/internal/llm"
	"profilebot/internal/logger"
)

// memoryCache is a map-backed Cache for tests.
type memoryCache struct {
	insights map[string]llm.Insight
	sets     int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{insights: map[string]llm.Insight{}}
}

func (c *memoryCache) GetInsight(_ context.Context, contentHash string) (*llm.Insight, error) {
	insight, ok := c.insights[contentHash]
	if !ok {
		return nil, nil
	}
	return &insight, nil
}

func (c *memoryCache) SetInsight(_ context.Context, contentHash string, insight llm.Insight, _ time.Duration) error {
	c.insights[contentHash] = insight
	c.sets++
	return nil
}

func (c *memoryCache) Close() error { return nil }

func TestGenerateSuccess(t *testing.T) {
	client := new(llm.MockClient)
	client.On("GenerateInsights", mock.Anything, "bio.txt", "short content").
		Return(llm.Insight{Summary: "A bio.", Keywords: []string{"bio", "go"}}, nil)

	gen := NewInsightGenerator(client, nil, logger.New("error"))
	summary, keywords := gen.Generate(context.Background(), "bio.txt", "short content", "hash-1")
	require.Equal(t, "A bio.", summary)
	require.Equal(t, []string{"bio", "go"}, keywords)
}

func TestGenerateFallbackOnError(t *testing.T) {
	client := new(llm.MockClient)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{}, errors.New("rate limited"))

	gen := NewInsightGenerator(client, nil, logger.New("error"))
	summary, keywords := gen.Generate(context.Background(), "resume.pdf", "content", "hash-2")
	require.Equal(t, "Document: resume.pdf", summary)
	require.NotNil(t, keywords)
	require.Empty(t, keywords)
}

func TestGenerateTruncatesContent(t *testing.T) {
	long := strings.Repeat("é", maxInsightChars+500)

	client := new(llm.MockClient)
	client.On("GenerateInsights", mock.Anything, "long.txt", mock.MatchedBy(func(excerpt string) bool {
		return utf8.RuneCountInString(excerpt) == maxInsightChars
	})).Return(llm.Insight{Summary: "s"}, nil)

	gen := NewInsightGenerator(client, nil, logger.New("error"))
	gen.Generate(context.Background(), "long.txt", long, "hash-3")
	client.AssertExpectations(t)
}

func TestGenerateUsesCache(t *testing.T) {
	client := new(llm.MockClient)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{Summary: "Generated.", Keywords: []string{"k"}}, nil).
		Once()

	c := newMemoryCache()
	gen := NewInsightGenerator(client, c, logger.New("error"))

	summary, _ := gen.Generate(context.Background(), "doc.txt", "content", "same-hash")
	require.Equal(t, "Generated.", summary)
	require.Equal(t, 1, c.sets)

	// Second call with the same hash is served from the cache.
	summary, keywords := gen.Generate(context.Background(), "doc.txt", "content", "same-hash")
	require.Equal(t, "Generated.", summary)
	require.Equal(t, []string{"k"}, keywords)
	client.AssertExpectations(t)
}

func TestTruncateChars(t *testing.T) {
	require.Equal(t, "abc", truncateChars("abc", 5))
	require.Equal(t, "ab", truncateChars("abc", 2))
	require.Equal(t, "日本", truncateChars("日本語", 2))
}
