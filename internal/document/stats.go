package document

// Stats aggregates one processing run. File-type counts and content lengths
// cover successful records only; failed records count toward the totals.
type Stats struct {
	TotalDocuments       int              `json:"total_documents"`
	Successful           int              `json:"successful_processing"`
	Failed               int              `json:"failed_processing"`
	ByFileType           map[FileType]int `json:"file_types"`
	TotalContentLength   int              `json:"total_content_length"`
	AverageContentLength float64          `json:"average_content_length"`
}

// CorpusStats computes statistics over a corpus.
func CorpusStats(corpus Corpus) Stats {
	stats := Stats{
		TotalDocuments: len(corpus),
		ByFileType:     map[FileType]int{},
	}
	for _, rec := range corpus {
		if rec.Failed() {
			stats.Failed++
			continue
		}
		stats.Successful++
		stats.ByFileType[rec.FileType]++
		stats.TotalContentLength += rec.ContentLength
	}
	if stats.Successful > 0 {
		stats.AverageContentLength = float64(stats.TotalContentLength) / float64(stats.Successful)
	}
	return stats
}
