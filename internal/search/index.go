// Package search keeps a full-text index of transcript chapters.
package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/nguyentantai21042004/transcript-flow/internal/document"
)

// Index wraps a bleve index of chapter documents. Safe for concurrent use.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// Video identifies the transcript being indexed.
type Video struct {
	Stem      string
	Title     string
	Published string
}

// Document is one indexed chapter.
type Document struct {
	ID        string
	Stem      string
	Title     string
	Published string
	Chapter   string
	Number    int
	Text      string
}

func (d Document) toMap() map[string]interface{} {
	return map[string]interface{}{
		"stem":      d.Stem,
		"title":     d.Title,
		"published": d.Published,
		"chapter":   d.Chapter,
		"number":    d.Number,
		"text":      d.Text,
	}
}

// Open opens the index at path, creating it when missing and rebuilding it
// when the mapping version changed.
func Open(path string) (*Index, error) {
	versionPath := path + ".version"

	if _, err := os.Stat(path); err == nil {
		version, readErr := os.ReadFile(versionPath)
		if readErr == nil && string(version) == mappingVersion {
			idx, openErr := bleve.Open(path)
			if openErr == nil {
				return &Index{index: idx}, nil
			}
		}
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("remove old index: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}
	idx, err := bleve.New(path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := os.WriteFile(versionPath, []byte(mappingVersion), 0644); err != nil {
		idx.Close()
		return nil, fmt.Errorf("write index version: %w", err)
	}
	return &Index{index: idx}, nil
}

// OpenMemory returns an index that lives only in memory.
func OpenMemory() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

// Documents splits a transcript document into one search document per
// chapter. A flat transcript becomes a single document.
func Documents(v Video, content string) []Document {
	parsed := document.Parse(content)
	if !parsed.HasChapters() {
		return []Document{{
			ID:        docID(v.Stem, 0),
			Stem:      v.Stem,
			Title:     v.Title,
			Published: v.Published,
			Chapter:   "Transcript",
			Number:    1,
			Text:      stripMarkers(content),
		}}
	}

	chapters := parsed.Chapters()
	out := make([]Document, 0, len(chapters))
	for idx, c := range chapters {
		out = append(out, Document{
			ID:        docID(v.Stem, idx),
			Stem:      v.Stem,
			Title:     v.Title,
			Published: v.Published,
			Chapter:   c.Title,
			Number:    idx + 1,
			Text:      parsed.Text(idx),
		})
	}
	return out
}

func docID(stem string, idx int) string {
	return fmt.Sprintf("%s#%d", stem, idx)
}

func stripMarkers(content string) string {
	return strings.TrimSpace(strings.ReplaceAll(content, document.FlatMarker, ""))
}

// IndexTranscript replaces every indexed chapter of v with the chapters of
// content.
func (i *Index) IndexTranscript(ctx context.Context, v Video, content string) error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	stale, err := i.idsForStem(ctx, v.Stem)
	if err != nil {
		return err
	}

	batch := i.index.NewBatch()
	for _, id := range stale {
		batch.Delete(id)
	}
	for _, d := range Documents(v, content) {
		if err := batch.Index(d.ID, d.toMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", d.ID, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// DeleteVideo removes every chapter of stem.
func (i *Index) DeleteVideo(ctx context.Context, stem string) error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	ids, err := i.idsForStem(ctx, stem)
	if err != nil {
		return err
	}
	batch := i.index.NewBatch()
	for _, id := range ids {
		batch.Delete(id)
	}
	return i.index.Batch(batch)
}

func (i *Index) idsForStem(ctx context.Context, stem string) ([]string, error) {
	q := bleve.NewTermQuery(stem)
	q.SetField("stem")

	req := bleve.NewSearchRequestOptions(q, 10000, 0, false)
	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("find chapters of %s: %w", stem, err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Count returns the number of indexed chapters.
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}
