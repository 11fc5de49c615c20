package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// jsonExtractor parses the file and re-serializes it with 2-space
// indentation as the canonical content, preserving source key order.
type jsonExtractor struct{}

func (jsonExtractor) Extract(path string) (string, FormatMetadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeJSON, Err: err}
	}

	var root any
	if err := json.Unmarshal(raw, &root); err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeJSON, Err: err}
	}

	// Compact then re-indent the raw bytes; unlike a map round-trip this
	// keeps the source's key order.
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeJSON, Err: err}
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact.Bytes(), "", "  "); err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeJSON, Err: err}
	}

	meta := JSONMetadata{
		Keys: topLevelKeys(raw),
		Type: jsonTypeName(root),
		Size: jsonSize(root),
	}
	return pretty.String(), meta, nil
}

// topLevelKeys returns the root object's keys in source order, or an empty
// list when the root is not an object.
func topLevelKeys(raw []byte) []string {
	keys := []string{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return keys
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return keys
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := keyTok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return keys
		}
	}
	return keys
}

// skipValue consumes one complete JSON value from the token stream.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return nil
	}
	for dec.More() {
		if delim == '{' {
			// Object member key.
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		if err := skipValue(dec); err != nil {
			return err
		}
	}
	// Closing delimiter.
	_, err = dec.Token()
	return err
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// jsonSize is the member count for objects and arrays, 1 for scalars.
func jsonSize(v any) int {
	switch val := v.(type) {
	case map[string]any:
		return len(val)
	case []any:
		return len(val)
	default:
		return 1
	}
}
