package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorpusStats(t *testing.T) {
	corpus := Corpus{
		"a.txt":  {Filename: "a.txt", FileType: FileTypeText, ContentLength: 10},
		"b.txt":  {Filename: "b.txt", FileType: FileTypeText, ContentLength: 20},
		"c.md":   {Filename: "c.md", FileType: FileTypeMarkdown, ContentLength: 30},
		"d.docx": {Filename: "d.docx", Error: "boom"},
	}

	stats := CorpusStats(corpus)
	require.Equal(t, 4, stats.TotalDocuments)
	require.Equal(t, 3, stats.Successful)
	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 60, stats.TotalContentLength)
	require.Equal(t, 20.0, stats.AverageContentLength)
	require.Equal(t, map[FileType]int{FileTypeText: 2, FileTypeMarkdown: 1}, stats.ByFileType)
}

func TestCorpusStatsEmpty(t *testing.T) {
	stats := CorpusStats(Corpus{})
	require.Equal(t, 0, stats.TotalDocuments)
	require.Equal(t, 0.0, stats.AverageContentLength, "no successful documents means no average")
	require.Empty(t, stats.ByFileType)
}

func TestCorpusStatsAllFailed(t *testing.T) {
	corpus := Corpus{
		"x.pdf": {Filename: "x.pdf", Error: "bad"},
	}
	stats := CorpusStats(corpus)
	require.Equal(t, 1, stats.TotalDocuments)
	require.Equal(t, 1, stats.Failed)
	require.Equal(t, 0.0, stats.AverageContentLength)
}
