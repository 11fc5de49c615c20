package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfExtractor concatenates per-page text with 1-indexed page markers and
// collects document-level metadata from the PDF info dictionary.
type pdfExtractor struct{}

func (pdfExtractor) Extract(path string) (content string, meta FormatMetadata, err error) {
	// The underlying parser panics on malformed input; surface those as
	// extraction errors like any other parse failure.
	defer func() {
		if rec := recover(); rec != nil {
			content, meta = "", nil
			err = &ExtractionError{FileType: FileTypePDF, Err: fmt.Errorf("malformed pdf: %v", rec)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", nil, &ExtractionError{FileType: FileTypePDF, Err: err}
	}
	defer f.Close()

	var b strings.Builder
	total := reader.NumPage()
	for num := 1; num <= total; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			return "", nil, &ExtractionError{FileType: FileTypePDF, Err: fmt.Errorf("page %d: %w", num, perr)}
		}
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "\n--- Page %d ---\n%s\n", num, text)
	}

	return strings.TrimSpace(b.String()), pdfMetadata(reader, total), nil
}

// pdfMetadata reads the trailer info dictionary. Absent fields stay empty
// strings so the metadata shape is stable across documents.
func pdfMetadata(reader *pdf.Reader, pages int) PDFMetadata {
	info := reader.Trailer().Key("Info")
	return PDFMetadata{
		Title:   info.Key("Title").Text(),
		Author:  info.Key("Author").Text(),
		Subject: info.Key("Subject").Text(),
		Creator: info.Key("Creator").Text(),
		Pages:   pages,
	}
}
