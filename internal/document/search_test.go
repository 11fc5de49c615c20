package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchCorpusScoring(t *testing.T) {
	corpus := Corpus{
		"golang-resume.txt": {
			Filename: "golang-resume.txt",
			Content:  "Ten years writing golang services.",
			Summary:  "A golang engineer's resume.",
			Keywords: []string{"golang", "golang backend"},
		},
		"cover-letter.txt": {
			Filename: "cover-letter.txt",
			Content:  "I mostly write Golang these days.",
			Summary:  "Cover letter.",
			Keywords: []string{"careers"},
		},
		"recipes.md": {
			Filename: "recipes.md",
			Content:  "Sourdough starter notes.",
			Summary:  "Baking.",
		},
		"corrupt.pdf": {
			Filename: "corrupt.pdf",
			Content:  "golang everywhere",
			Error:    "extraction failed",
		},
	}

	results := SearchCorpus("golang", corpus)
	require.Len(t, results, 2, "zero-score and failed records are dropped")

	// content(3) + summary(2) + keywords(1, counted once) + filename(1) = 7
	top := results[0]
	require.Equal(t, "golang-resume.txt", top.Filename)
	require.Equal(t, 7, top.Score)
	require.Equal(t, []string{"content", "summary", "keywords", "filename"}, top.MatchedFields)

	// content only, matched case-insensitively
	require.Equal(t, "cover-letter.txt", results[1].Filename)
	require.Equal(t, 3, results[1].Score)
	require.Equal(t, []string{"content"}, results[1].MatchedFields)
}

func TestSearchCorpusTieBreaksOnFilename(t *testing.T) {
	corpus := Corpus{
		"beta.txt":  {Filename: "beta.txt", Content: "shared term"},
		"alpha.txt": {Filename: "alpha.txt", Content: "shared term"},
	}

	results := SearchCorpus("shared", corpus)
	require.Len(t, results, 2)
	require.Equal(t, "alpha.txt", results[0].Filename)
	require.Equal(t, "beta.txt", results[1].Filename)
}

func TestSearchCorpusEmptyQueryMatchesAllSuccessful(t *testing.T) {
	corpus := Corpus{
		"a.txt": {Filename: "a.txt", Content: "anything"},
		"b.txt": {Filename: "b.txt", Error: "failed"},
	}

	results := SearchCorpus("", corpus)
	require.Len(t, results, 1)
	require.Equal(t, "a.txt", results[0].Filename)
}

func TestSearchCorpusNoMatches(t *testing.T) {
	corpus := Corpus{
		"a.txt": {Filename: "a.txt", Content: "nothing relevant"},
	}
	require.Empty(t, SearchCorpus("quasar", corpus))
}
