package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
	"github.com/p-n-ai/dsa-sheet/internal/organizer"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/search"
	"github.com/p-n-ai/dsa-sheet/internal/session"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		if err := s.storage.HealthCheck(ctx); err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type topicSummary struct {
	Path        string `json:"path"`
	Slug        string `json:"slug"`
	Heading     string `json:"heading"`
	SubHeading  string `json:"subHeading,omitempty"`
	Placeholder bool   `json:"placeholder"`
	progress.Count
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics := search.Topics(s.topics, r.URL.Query().Get("q"))

	out := make([]topicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicSummary{
			Path:        t.Path,
			Slug:        t.Slug(),
			Heading:     t.Heading,
			SubHeading:  t.SubHeading,
			Placeholder: organizer.IsPlaceholder(t),
			Count:       progress.TopicSummary(t, s.progress).Count,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type questionStatus struct {
	catalog.Question
	Completed  bool   `json:"completed"`
	Bookmarked bool   `json:"bookmarked"`
	Note       string `json:"note,omitempty"`
}

type categoryResponse struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Level     difficulty.Level `json:"difficulty"`
	Total     int              `json:"total"`
	Questions []questionStatus `json:"questions"`
}

type topicResponse struct {
	Path                  string             `json:"path"`
	Heading               string             `json:"heading"`
	SubHeading            string             `json:"subHeading,omitempty"`
	HasQuestions          bool               `json:"hasQuestions"`
	BookmarkFilterEnabled bool               `json:"bookmarkFilterEnabled"`
	Categories            []categoryResponse `json:"categories"`
	progress.Count
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, ok := search.TopicView(s.catalog, r.PathValue("slug"), q, s.progress)
	if !ok {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}

	resp := topicResponse{
		Path:                  v.Path,
		Heading:               v.Heading,
		SubHeading:            v.SubHeading,
		HasQuestions:          v.HasQuestions(),
		BookmarkFilterEnabled: s.options.BookmarkFilterEnabled,
		Categories:            make([]categoryResponse, 0, len(v.Categories)),
		Count:                 progress.TopicSummary(v.Topic, s.progress).Count,
	}
	for _, c := range v.Categories {
		cr := categoryResponse{ID: c.ID, Name: c.Name, Level: c.Level, Total: c.Total, Questions: make([]questionStatus, 0, len(c.Questions))}
		for _, question := range c.Questions {
			cr.Questions = append(cr.Questions, s.status(question))
		}
		resp.Categories = append(resp.Categories, cr)
	}
	writeJSON(w, http.StatusOK, resp)
}

type hitResponse struct {
	search.Hit
	Difficulty difficulty.Level `json:"difficulty"`
	Completed  bool             `json:"completed"`
	Bookmarked bool             `json:"bookmarked"`
}

type searchResponse struct {
	Searched              bool          `json:"searched"`
	Count                 int           `json:"count"`
	Hits                  []hitResponse `json:"hits"`
	BookmarkFilterEnabled bool          `json:"bookmarkFilterEnabled"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := search.Run(s.catalog, q, s.progress)
	s.metrics.ObserveSearch(res.Searched, res.Count())

	writeJSON(w, http.StatusOK, searchResponse{
		Searched:              res.Searched,
		Count:                 res.Count(),
		Hits:                  s.hits(res.Hits),
		BookmarkFilterEnabled: s.options.BookmarkFilterEnabled,
	})
}

func (s *Server) handleBookmarks(w http.ResponseWriter, r *http.Request) {
	level, err := difficulty.Parse(r.URL.Query().Get("difficulty"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hits := search.Bookmarks(s.catalog, s.progress, r.URL.Query().Get("q"), level)
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(hits),
		"hits":  s.hits(hits),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, progress.Stats(s.catalog, s.progress))
}

type progressResponse struct {
	ID         string            `json:"id"`
	Completed  bool              `json:"completed"`
	Bookmarked bool              `json:"bookmarked"`
	Note       string            `json:"note"`
	Question   *catalog.Question `json:"question,omitempty"`
	TopicPath  string            `json:"topicPath,omitempty"`
	Category   string            `json:"category,omitempty"`
	Difficulty difficulty.Level  `json:"difficulty,omitempty"`
}

// handleProgress answers with defaults for ids the catalog does not list.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resp := progressResponse{
		ID:         id,
		Completed:  s.progress.IsCompleted(id),
		Bookmarked: s.progress.IsBookmarked(id),
		Note:       s.progress.Note(id),
	}
	if t, c, q, ok := s.catalog.Locate(id); ok {
		resp.Question = &q
		resp.TopicPath = t.Path
		resp.Category = c.Name
		resp.Difficulty = difficulty.Classify(c.ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.questionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "completed": s.progress.ToggleCompleted(id)})
}

func (s *Server) handleToggleBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := s.questionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "bookmarked": s.progress.ToggleBookmarked(id)})
}

type noteRequest struct {
	Note string `json:"note" validate:"max=10000"`
}

func (s *Server) handleSetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.questionID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !s.bind(w, r, &req) {
		return
	}
	s.progress.SetNote(id, req.Note)
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "note": req.Note})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Current())
}

type loginRequest struct {
	Name  string `json:"username" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.bind(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.session.Login(req.Name, req.Email))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout()
	writeJSON(w, http.StatusOK, s.session.Current())
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]session.Theme{"theme": s.theme.Theme()})
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !s.bind(w, r, &req) {
		return
	}
	s.theme.Set(session.Theme(req.Theme))
	writeJSON(w, http.StatusOK, map[string]session.Theme{"theme": s.theme.Theme()})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]session.Theme{"theme": s.theme.Toggle()})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var (
		q  catalog.Quote
		ok bool
	)
	switch r.PathValue("action") {
	case "current":
		q, ok = s.quotes.Current()
	case "next":
		q, ok = s.quotes.Next()
	case "prev":
		q, ok = s.quotes.Prev()
	case "random":
		q, ok = s.quotes.Random()
	default:
		writeError(w, http.StatusNotFound, "unknown quote action")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no quotes configured")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// handleExport buffers the whole workbook so a failed export still answers
// with a clean JSON error.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.writeWorkbook(&buf, s.catalog, s.progress); err != nil {
		slog.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="dsa-sheet-progress.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write export failed", "error", err)
	}
}

// parseQuery reads q, difficulty and bookmarked. bookmarked is ignored when
// the catalog disables the bookmark filter.
func (s *Server) parseQuery(r *http.Request) (search.Query, error) {
	v := r.URL.Query()

	level, err := difficulty.Parse(v.Get("difficulty"))
	if err != nil {
		return search.Query{}, err
	}

	var only bool
	if raw := v.Get("bookmarked"); raw != "" {
		only, err = strconv.ParseBool(raw)
		if err != nil {
			return search.Query{}, fmt.Errorf("invalid bookmarked value %q", raw)
		}
	}

	return s.options.Apply(search.Query{Text: v.Get("q"), Level: level, BookmarksOnly: only}), nil
}

// questionID rejects mutations for ids the catalog does not list.
func (s *Server) questionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, _, _, ok := s.catalog.Locate(id); !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return "", false
	}
	return id, true
}

func (s *Server) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func (s *Server) status(q catalog.Question) questionStatus {
	return questionStatus{
		Question:   q,
		Completed:  s.progress.IsCompleted(q.ID),
		Bookmarked: s.progress.IsBookmarked(q.ID),
		Note:       s.progress.Note(q.ID),
	}
}

func (s *Server) hits(hits []search.Hit) []hitResponse {
	out := make([]hitResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, hitResponse{
			Hit:        h,
			Difficulty: h.Level(),
			Completed:  s.progress.IsCompleted(h.Question.ID),
			Bookmarked: s.progress.IsBookmarked(h.Question.ID),
		})
	}
	return out
}
