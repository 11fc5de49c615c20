package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestTextExtractUTF8(t *testing.T) {
	path := writeFixture(t, "notes.txt", []byte("hello world\nsecond line"))

	content, meta, err := textExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "hello world\nsecond line", content)

	tm, ok := meta.(TextMetadata)
	require.True(t, ok, "expected TextMetadata, got %T", meta)
	require.Equal(t, "utf-8", tm.Encoding)
	require.Equal(t, 2, tm.Lines)
	require.Equal(t, 4, tm.Words)
	require.Equal(t, len("hello world\nsecond line"), tm.Characters)
}

func TestTextExtractLatin1Fallback(t *testing.T) {
	// "café" in latin-1: 0xE9 is invalid as UTF-8.
	raw := []byte{'c', 'a', 'f', 0xE9}
	path := writeFixture(t, "legacy.txt", raw)

	content, meta, err := textExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "café", content)

	tm := meta.(TextMetadata)
	require.Equal(t, "latin-1", tm.Encoding)
	require.Equal(t, 4, tm.Characters, "character count is runes, not bytes")
}

func TestTextExtractMissingFile(t *testing.T) {
	_, _, err := textExtractor{}.Extract(filepath.Join(t.TempDir(), "absent.txt"))
	var extraction *ExtractionError
	require.True(t, errors.As(err, &extraction))
	require.Equal(t, FileTypeText, extraction.FileType)
}

func TestDecodeTextUTF8MultiByte(t *testing.T) {
	content, encoding, err := decodeText([]byte("héllo ☃"))
	require.NoError(t, err)
	require.Equal(t, "utf-8", encoding)
	require.Equal(t, "héllo ☃", content)
}
