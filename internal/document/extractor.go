package document

import (
	"path/filepath"
	"strings"
)

// extractor converts one file into raw text plus format metadata.
type extractor interface {
	Extract(path string) (string, FormatMetadata, error)
}

// extractorFor selects the extractor for a file type. The set is closed;
// callers must resolve the type through FileTypeFromExt first.
func extractorFor(ft FileType) extractor {
	switch ft {
	case FileTypePDF:
		return pdfExtractor{}
	case FileTypeDocx:
		return docxExtractor{}
	case FileTypeText:
		return textExtractor{}
	case FileTypeMarkdown:
		return markdownExtractor{}
	case FileTypeJSON:
		return jsonExtractor{}
	}
	return nil
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// resolveFileType inspects a path's extension; unrecognized extensions are
// rejected before any extractor runs.
func resolveFileType(path string) (FileType, error) {
	ext := filepath.Ext(path)
	ft, ok := FileTypeFromExt(ext)
	if !ok {
		return "", &UnsupportedTypeError{Ext: ext}
	}
	return ft, nil
}
