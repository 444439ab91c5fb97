package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/digest"
	"github.com/nguyentantai21042004/transcript-flow/internal/document"
	"github.com/nguyentantai21042004/transcript-flow/internal/naming"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type chapterView struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Clock  string `json:"clock"`
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

type videoView struct {
	Video    *catalog.Video `json:"video"`
	Chapters []chapterView  `json:"chapters"`
	Summary  string         `json:"summary,omitempty"`
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, defaultLimit)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	videos, err := s.opts.Catalog.List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list videos: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []*catalog.Video{}
	}
	writeJSON(w, map[string]any{"videos": videos})
}

// handleGetVideo returns a catalog entry with its chapters read back from the
// transcript document.
func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	stem := chi.URLParam(r, "stem")

	video, err := s.opts.Catalog.GetByStem(r.Context(), stem)
	if errors.Is(err, catalog.ErrNotFound) {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to load video: "+err.Error(), http.StatusInternalServerError)
		return
	}

	view := videoView{Video: video, Chapters: []chapterView{}}

	transcriptPath := video.TranscriptPath
	if transcriptPath == "" {
		transcriptPath = filepath.Join(s.opts.TranscriptsDir, naming.TranscriptName(video.Stem))
	}
	content, err := os.ReadFile(transcriptPath)
	switch {
	case err == nil:
		view.Chapters = chapters(document.Parse(string(content)))
	case !errors.Is(err, fs.ErrNotExist):
		s.log.Warn("read transcript", "stem", stem, "error", err)
	}

	if video.SummaryPath != "" {
		if summary, err := os.ReadFile(video.SummaryPath); err == nil {
			view.Summary = string(summary)
		}
	}

	writeJSON(w, view)
}

func chapters(parsed *document.Parsed) []chapterView {
	out := []chapterView{}
	for i, c := range parsed.Chapters() {
		out = append(out, chapterView{
			Number: c.Number,
			Title:  c.Title,
			Clock:  c.Clock,
			Anchor: naming.Slug(c.Title),
			Text:   parsed.Text(i),
		})
	}
	return out
}

func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	records, err := digest.Collect(s.opts.SummariesDir)
	if errors.Is(err, fs.ErrNotExist) {
		records = []digest.Record{}
	} else if err != nil {
		jsonError(w, "failed to read summaries: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"summaries": records})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.opts.Index == nil {
		jsonError(w, "search index unavailable", http.StatusServiceUnavailable)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}
	limit, err := queryLimit(r, 0)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := s.opts.Index.Search(r.Context(), q, limit)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func queryLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	return min(n, maxLimit), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
