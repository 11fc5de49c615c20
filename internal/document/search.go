package document

import (
	"sort"
	"strings"
)

// Field weights for the additive relevance score.
const (
	scoreContent  = 3
	scoreSummary  = 2
	scoreKeyword  = 1
	scoreFilename = 1
)

// SearchResult is one scored hit.
type SearchResult struct {
	Filename      string   `json:"filename"`
	Score         int      `json:"score"`
	MatchedFields []string `json:"matched_fields"`
	Summary       string   `json:"summary"`
	Keywords      []string `json:"keywords"`
}

// SearchCorpus scores every successful record against the query with
// case-insensitive substring matching over content, summary, keywords, and
// filename. Zero-score records are dropped. Results sort by score descending,
// then filename ascending so equal scores order deterministically.
//
// An empty query matches every successful document; callers wanting to
// reject empty queries must do so themselves.
func SearchCorpus(query string, corpus Corpus) []SearchResult {
	q := strings.ToLower(query)

	var results []SearchResult
	for filename, rec := range corpus {
		if rec.Failed() {
			continue
		}

		score := 0
		var fields []string
		if strings.Contains(strings.ToLower(rec.Content), q) {
			score += scoreContent
			fields = append(fields, "content")
		}
		if strings.Contains(strings.ToLower(rec.Summary), q) {
			score += scoreSummary
			fields = append(fields, "summary")
		}
		// Keywords count once no matter how many match.
		for _, kw := range rec.Keywords {
			if strings.Contains(strings.ToLower(kw), q) {
				score += scoreKeyword
				fields = append(fields, "keywords")
				break
			}
		}
		if strings.Contains(strings.ToLower(filename), q) {
			score += scoreFilename
			fields = append(fields, "filename")
		}

		if score == 0 {
			continue
		}
		results = append(results, SearchResult{
			Filename:      filename,
			Score:         score,
			MatchedFields: fields,
			Summary:       rec.Summary,
			Keywords:      rec.Keywords,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Filename < results[j].Filename
	})
	return results
}
