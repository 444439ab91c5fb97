package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

const DefaultLimit = 20

// Hit is one matching chapter.
type Hit struct {
	ID        string  `json:"id"`
	Stem      string  `json:"stem"`
	Title     string  `json:"title"`
	Published string  `json:"published"`
	Chapter   string  `json:"chapter"`
	Number    int     `json:"number"`
	Score     float64 `json:"score"`
	Fragment  string  `json:"fragment,omitempty"`
}

// Result is a page of hits.
type Result struct {
	Query string `json:"query"`
	Total uint64 `json:"total"`
	Hits  []Hit  `json:"hits"`
}

// Search runs a full-text query over chapter text, chapter titles and video
// titles.
func (i *Index) Search(ctx context.Context, q string, limit int) (*Result, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return &Result{Query: q, Hits: []Hit{}}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildQuery(q), limit, 0, false)
	req.Fields = []string{"stem", "title", "published", "chapter", "number"}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField("text")

	res, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &Result{Query: q, Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if v, ok := h.Fields["stem"].(string); ok {
			hit.Stem = v
		}
		if v, ok := h.Fields["title"].(string); ok {
			hit.Title = v
		}
		if v, ok := h.Fields["published"].(string); ok {
			hit.Published = v
		}
		if v, ok := h.Fields["chapter"].(string); ok {
			hit.Chapter = v
		}
		if v, ok := h.Fields["number"].(float64); ok {
			hit.Number = int(v)
		}
		if frags := h.Fragments["text"]; len(frags) > 0 {
			hit.Fragment = frags[0]
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

func buildQuery(q string) query.Query {
	text := bleve.NewMatchQuery(q)
	text.SetField("text")

	chapter := bleve.NewMatchQuery(q)
	chapter.SetField("chapter")
	chapter.SetBoost(2)

	title := bleve.NewMatchQuery(q)
	title.SetField("title")
	title.SetBoost(1.5)

	return bleve.NewDisjunctionQuery(text, chapter, title)
}
