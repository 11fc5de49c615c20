package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// docxExtractor reads DOCX files directly as zip archives: paragraph text
// from word/document.xml and core properties from docProps/core.xml.
type docxExtractor struct{}

var errNoDocumentXML = errors.New("missing word/document.xml")

func (docxExtractor) Extract(path string) (string, FormatMetadata, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeDocx, Err: err}
	}
	defer archive.Close()

	raw, err := readArchiveFile(&archive.Reader, "word/document.xml")
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeDocx, Err: err}
	}
	if raw == nil {
		return "", nil, &ExtractionError{FileType: FileTypeDocx, Err: errNoDocumentXML}
	}

	var doc documentXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", nil, &ExtractionError{FileType: FileTypeDocx, Err: err}
	}

	// Non-blank paragraphs, one per line, in document order.
	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		text := para.text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	meta := DocxMetadata{Paragraphs: len(doc.Body.Paragraphs)}
	if raw, err := readArchiveFile(&archive.Reader, "docProps/core.xml"); err == nil && raw != nil {
		var core coreXML
		if err := xml.Unmarshal(raw, &core); err == nil {
			meta.Title = strings.TrimSpace(core.Title)
			meta.Author = strings.TrimSpace(core.Creator)
			meta.Subject = strings.TrimSpace(core.Subject)
			meta.Created = strings.TrimSpace(core.Created)
			meta.Modified = strings.TrimSpace(core.Modified)
		}
	}

	return strings.TrimSpace(b.String()), meta, nil
}

// readArchiveFile returns the named archive entry's bytes, or nil if the
// entry does not exist.
func readArchiveFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// documentXML mirrors the subset of word/document.xml we consume.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func (p paragraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		for _, t := range r.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}

// coreXML mirrors docProps/core.xml. Timestamps stay as the raw W3CDTF
// strings the archive carries.
type coreXML struct {
	Title    string `xml:"title"`
	Creator  string `xml:"creator"`
	Subject  string `xml:"subject"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}
