package document

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
)

// markdownExtractor keeps the raw Markdown source as content. HTML is
// rendered only to measure its length for metadata and then discarded.
type markdownExtractor struct{}

func (markdownExtractor) Extract(path string) (string, FormatMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeMarkdown, Err: err}
	}
	content := string(raw)

	var html bytes.Buffer
	if err := goldmark.Convert(raw, &html); err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeMarkdown, Err: err}
	}

	meta := MarkdownMetadata{
		Lines:      len(strings.Split(content, "\n")),
		HTMLLength: utf8.RuneCount(html.Bytes()),
		Headers:    extractHeaders(content),
	}
	return content, meta, nil
}

// extractHeaders collects every line whose trimmed form starts with '#',
// in source order, keeping the marker characters.
func extractHeaders(content string) []string {
	var headers []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			headers = append(headers, trimmed)
		}
	}
	return headers
}
