package document

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// textExtractor reads plain text as UTF-8, falling back to a fixed sequence
// of legacy encodings and recording which one succeeded.
type textExtractor struct{}

// Fallback order is fixed; the first decoder that accepts the bytes wins.
var legacyEncodings = []struct {
	name    string
	charmap encoding.Encoding
}{
	{"latin-1", charmap.ISO8859_1},
	{"cp1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

func (textExtractor) Extract(path string) (string, FormatMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeText, Err: err}
	}

	content, encodingName, err := decodeText(raw)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeText, Err: err}
	}

	meta := TextMetadata{
		Encoding:   encodingName,
		Lines:      len(strings.Split(content, "\n")),
		Words:      len(strings.Fields(content)),
		Characters: utf8.RuneCountInString(content),
	}
	return content, meta, nil
}

func decodeText(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}
	for _, enc := range legacyEncodings {
		decoded, err := enc.charmap.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), enc.name, nil
	}
	return "", "", fmt.Errorf("could not decode file with any supported encoding")
}
