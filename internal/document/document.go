// Package document implements the document ingestion and retrieval pipeline:
// per-format text extraction, AI insight generation, an in-memory corpus,
// substring relevance search, and corpus statistics.
package document

import (
	"errors"
	"fmt"
	"time"
)

// FileType identifies a supported document format, keyed by normalized
// lower-case extension without the leading dot.
type FileType string

const (
	FileTypePDF      FileType = "pdf"
	FileTypeDocx     FileType = "docx"
	FileTypeText     FileType = "txt"
	FileTypeMarkdown FileType = "md"
	FileTypeJSON     FileType = "json"
)

// FileTypeFromExt maps a file extension (with or without the leading dot,
// any case) to a supported FileType.
func FileTypeFromExt(ext string) (FileType, bool) {
	switch normalizeExt(ext) {
	case "pdf":
		return FileTypePDF, true
	case "docx":
		return FileTypeDocx, true
	case "txt":
		return FileTypeText, true
	case "md":
		return FileTypeMarkdown, true
	case "json":
		return FileTypeJSON, true
	default:
		return "", false
	}
}

// FormatMetadata is the per-format metadata variant attached to a record.
type FormatMetadata interface {
	isFormatMetadata()
}

// PDFMetadata holds document-level fields from the PDF info dictionary.
// Absent fields are empty strings, never omitted.
type PDFMetadata struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
	Pages   int    `json:"pages"`
}

// DocxMetadata holds core properties and paragraph count of a DOCX file.
// Created and Modified keep the raw W3CDTF strings from docProps/core.xml.
type DocxMetadata struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Subject    string `json:"subject"`
	Paragraphs int    `json:"paragraphs"`
	Created    string `json:"created"`
	Modified   string `json:"modified"`
}

// TextMetadata describes a plain-text file, including which encoding
// successfully decoded it.
type TextMetadata struct {
	Encoding   string `json:"encoding"`
	Lines      int    `json:"lines"`
	Words      int    `json:"words"`
	Characters int    `json:"characters"`
}

// MarkdownMetadata lists source headers and the length of the rendered HTML.
// The HTML itself is not kept; content stays raw Markdown.
type MarkdownMetadata struct {
	Lines      int      `json:"lines"`
	HTMLLength int      `json:"html_length"`
	Headers    []string `json:"headers"`
}

// JSONMetadata describes the root value of a JSON document.
type JSONMetadata struct {
	Keys []string `json:"keys"`
	Type string   `json:"type"`
	Size int      `json:"size"`
}

func (PDFMetadata) isFormatMetadata()      {}
func (DocxMetadata) isFormatMetadata()     {}
func (TextMetadata) isFormatMetadata()     {}
func (MarkdownMetadata) isFormatMetadata() {}
func (JSONMetadata) isFormatMetadata()     {}

// Record is the result of processing one source file. A record is either
// successful (Error empty, content fields populated) or failed (Error set,
// content fields zero); never partially populated.
type Record struct {
	Filename      string         `json:"filename"`
	FileType      FileType       `json:"file_type,omitempty"`
	FileSize      int64          `json:"file_size,omitempty"`
	Content       string         `json:"content,omitempty"`
	ContentLength int            `json:"content_length,omitempty"`
	Summary       string         `json:"summary,omitempty"`
	Keywords      []string       `json:"keywords,omitempty"`
	Metadata      FormatMetadata `json:"metadata,omitempty"`
	ContentHash   string         `json:"content_hash,omitempty"`
	ProcessedAt   time.Time      `json:"processed_at"`
	Error         string         `json:"error,omitempty"`
}

// Failed reports whether processing this file failed.
func (r Record) Failed() bool {
	return r.Error != ""
}

// Corpus maps filename to its record for one processing run.
type Corpus map[string]Record

// ErrNotFound marks a missing source file.
var ErrNotFound = errors.New("document not found")

// UnsupportedTypeError is returned when a file's extension matches none of
// the supported formats.
type UnsupportedTypeError struct {
	Ext string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Ext)
}

// ExtractionError wraps a format-specific failure (parse error, decode
// error, malformed archive).
type ExtractionError struct {
	FileType FileType
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.FileType, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
