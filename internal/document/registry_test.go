package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"profilebot/internal/llm"
	"profilebot/internal/logger"
)

func newTestRegistry(t *testing.T, dir string) (*Registry, *llm.MockClient) {
	t.Helper()
	client := new(llm.MockClient)
	log := logger.New("error")
	reg := NewRegistry(dir, NewInsightGenerator(client, nil, log), log)
	return reg, client
}

func TestProcessAllMixedDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.txt"), []byte("I build Go services."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n\nSome notes."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte{0x89, 0x50}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{Summary: "A summary.", Keywords: []string{"go"}}, nil)

	corpus := reg.ProcessAll(context.Background())

	// Unsupported extension and the directory are skipped entirely.
	require.Len(t, corpus, 3)
	require.NotContains(t, corpus, "image.png")

	about := corpus["about.txt"]
	require.False(t, about.Failed())
	require.Equal(t, FileTypeText, about.FileType)
	require.Equal(t, "I build Go services.", about.Content)
	require.Equal(t, len("I build Go services."), about.ContentLength)
	require.Equal(t, "A summary.", about.Summary)
	require.Equal(t, []string{"go"}, about.Keywords)
	require.NotEmpty(t, about.ContentHash)
	require.False(t, about.ProcessedAt.IsZero())

	// The malformed JSON file becomes a failed record; the scan continues.
	broken := corpus["broken.json"]
	require.True(t, broken.Failed())
	require.Equal(t, "broken.json", broken.Filename)
	require.Empty(t, broken.Content)

	require.False(t, corpus["notes.md"].Failed())
}

func TestProcessAllReplacesCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.txt"), []byte("first"), 0o644))

	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{Summary: "s"}, nil)

	reg.ProcessAll(context.Background())
	require.Contains(t, reg.All(), "first.txt")

	require.NoError(t, os.Remove(filepath.Join(dir, "first.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.txt"), []byte("second"), 0o644))

	corpus := reg.ProcessAll(context.Background())
	require.NotContains(t, corpus, "first.txt")
	require.Contains(t, corpus, "second.txt")
}

func TestProcessOneErrors(t *testing.T) {
	dir := t.TempDir()
	reg, _ := newTestRegistry(t, dir)

	_, err := reg.ProcessOne(context.Background(), filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, ErrNotFound)

	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	_, err = reg.ProcessOne(context.Background(), path)
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, ".xlsx", unsupported.Ext)
}

func TestProcessOneInsertsRecord(t *testing.T) {
	dir := t.TempDir()
	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, "bio.txt", mock.Anything).
		Return(llm.Insight{Summary: "Bio.", Keywords: []string{"bio"}}, nil)

	path := filepath.Join(dir, "bio.txt")
	require.NoError(t, os.WriteFile(path, []byte("A short bio."), 0o644))

	rec, err := reg.ProcessOne(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "bio.txt", rec.Filename)
	require.Equal(t, reg.All()["bio.txt"].ContentHash, rec.ContentHash)
}

func TestProcessFallsBackWhenInsightsFail(t *testing.T) {
	dir := t.TempDir()
	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{}, context.DeadlineExceeded)

	path := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Experience: ten years."), 0o644))

	rec, err := reg.ProcessOne(context.Background(), path)
	require.NoError(t, err, "insight failures must not fail the document")
	require.Equal(t, "Document: cv.txt", rec.Summary)
	require.Empty(t, rec.Keywords)
	require.Equal(t, "Experience: ten years.", rec.Content)
}

func TestProcessAllIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.txt"), []byte("I build Go services."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n\nSome notes."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte(`{"b": 2, "a": 1}`), 0o644))

	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{Summary: "A summary.", Keywords: []string{"go"}}, nil)

	first := reg.ProcessAll(context.Background())
	second := reg.ProcessAll(context.Background())

	// Two scans of an unchanged directory yield identical records apart from
	// the processing timestamp.
	zeroTimestamps := func(corpus Corpus) Corpus {
		out := make(Corpus, len(corpus))
		for name, rec := range corpus {
			rec.ProcessedAt = time.Time{}
			out[name] = rec
		}
		return out
	}
	require.Equal(t, zeroTimestamps(first), zeroTimestamps(second))
}

func TestContentHashIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	reg, client := newTestRegistry(t, dir)
	client.On("GenerateInsights", mock.Anything, mock.Anything, mock.Anything).
		Return(llm.Insight{Summary: "s"}, nil)

	path := filepath.Join(dir, "same.txt")
	require.NoError(t, os.WriteFile(path, []byte("identical bytes"), 0o644))

	first, err := reg.ProcessOne(context.Background(), path)
	require.NoError(t, err)
	second, err := reg.ProcessOne(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, first.ContentHash, second.ContentHash)
}
