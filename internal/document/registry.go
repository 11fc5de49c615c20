package document

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"
)

// Registry owns the in-memory corpus. It is populated by one full scan at
// startup and afterwards only touched through ProcessOne for uploads. Readers
// (search, stats, context assembly) share the corpus after a scan; a rescan
// builds a fresh map and swaps it in one step so readers never observe a
// partially rebuilt corpus.
type Registry struct {
	dir      string
	insights *InsightGenerator
	log      *slog.Logger

	mu     sync.RWMutex
	corpus Corpus
}

// NewRegistry creates a registry over the given documents directory.
func NewRegistry(dir string, insights *InsightGenerator, log *slog.Logger) *Registry {
	return &Registry{dir: dir, insights: insights, log: log, corpus: Corpus{}}
}

// Dir returns the documents directory the registry scans.
func (r *Registry) Dir() string {
	return r.dir
}

// ProcessAll scans the documents directory (non-recursive), processes every
// file with a supported extension, and replaces the corpus. Files with
// unsupported extensions are skipped silently; a per-file failure becomes a
// failed record and the scan continues. Returns a snapshot of the new corpus.
func (r *Registry) ProcessAll(ctx context.Context) Corpus {
	corpus := Corpus{}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		r.log.Warn("documents directory unreadable", "dir", r.dir, "err", err)
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if _, ok := FileTypeFromExt(filepath.Ext(name)); !ok {
			continue
		}
		rec, err := r.processFile(ctx, filepath.Join(r.dir, name))
		if err != nil {
			r.log.Error("document processing failed", "filename", name, "err", err)
			rec = Record{Filename: name, Error: err.Error(), ProcessedAt: time.Now()}
		}
		corpus[name] = rec
	}

	r.mu.Lock()
	r.corpus = corpus
	r.mu.Unlock()

	return r.All()
}

// ProcessOne runs the pipeline for a single file (a new upload or an updated
// document) and inserts the record, replacing any record with the same
// filename. Unlike the batch scan, extraction and I/O errors propagate so
// the caller can report the specific failure: ErrNotFound, an
// *UnsupportedTypeError, or an *ExtractionError. Insight failures still
// degrade silently.
func (r *Registry) ProcessOne(ctx context.Context, path string) (Record, error) {
	rec, err := r.processFile(ctx, path)
	if err != nil {
		return Record{}, err
	}

	r.mu.Lock()
	r.corpus[rec.Filename] = rec
	r.mu.Unlock()

	return rec, nil
}

func (r *Registry) processFile(ctx context.Context, path string) (Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Record{}, err
	}

	ft, err := resolveFileType(path)
	if err != nil {
		return Record{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	hash := fmt.Sprintf("%x", md5.Sum(raw))

	content, meta, err := extractorFor(ft).Extract(path)
	if err != nil {
		return Record{}, err
	}

	filename := filepath.Base(path)
	summary, keywords := r.insights.Generate(ctx, filename, content, hash)

	return Record{
		Filename:      filename,
		FileType:      ft,
		FileSize:      info.Size(),
		Content:       content,
		ContentLength: utf8.RuneCountInString(content),
		Summary:       summary,
		Keywords:      keywords,
		Metadata:      meta,
		ContentHash:   hash,
		ProcessedAt:   time.Now(),
	}, nil
}

// All returns a copy of the corpus.
func (r *Registry) All() Corpus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(Corpus, len(r.corpus))
	for name, rec := range r.corpus {
		out[name] = rec
	}
	return out
}

// Search ranks the corpus against a free-text query.
func (r *Registry) Search(query string) []SearchResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return SearchCorpus(query, r.corpus)
}

// Stats aggregates counts and content-length statistics over the corpus.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return CorpusStats(r.corpus)
}
