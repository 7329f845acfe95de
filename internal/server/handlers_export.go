package server

import (
	"net/http"
	"strings"
	"time"

	"reklamapp/internal/deadline"
	"reklamapp/internal/domain"
	"reklamapp/internal/export"
	"reklamapp/internal/search"

	"go.uber.org/zap"
)

// handleExportPage renders the export chooser
func (s *Server) handleExportPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Exportálás")
	data.Data = map[string]interface{}{
		"Total": s.store.Len(),
	}
	s.render(w, r, "pages/exports/index.html", data)
}

// exportScope narrows the snapshot by the scope query parameter:
// all (default), open, or filtered (re-running the quick search query).
func (s *Server) exportScope(r *http.Request) []domain.Entry {
	entries := s.store.Snapshot()
	switch r.URL.Query().Get("scope") {
	case "open":
		return export.FilterOpen(entries)
	case "filtered":
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			return entries
		}
		return search.Filter(entries, search.Criteria{Query: query}, deadline.Today())
	default:
		return entries
	}
}

// handleExportList streams the complaint list in the requested format
func (s *Server) handleExportList(w http.ResponseWriter, r *http.Request) {
	entries := s.exportScope(r)
	today := deadline.Today()
	now := time.Now()

	var err error
	switch r.URL.Query().Get("format") {
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="reklamaciok.html"`)
		err = export.WriteListHTML(w, entries, today, now)
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="reklamaciok.txt"`)
		err = export.WriteListText(w, entries, today, now)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="reklamaciok.csv"`)
		err = export.WriteCSV(w, entries, today)
	}
	if err != nil {
		s.log.Error("list export failed", zap.Error(err))
	}
}

// handleSubmissionText downloads the plain-text submission of one complaint
func (s *Server) handleSubmissionText(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	c, err := s.store.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`_submission.txt"`)
	if err := export.WriteSubmissionText(w, id, c); err != nil {
		s.log.Error("submission export failed", zap.String("id", id), zap.Error(err))
	}
}

// handleSubmissionHTML renders the HTML submission of one complaint
func (s *Server) handleSubmissionHTML(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	c, err := s.store.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteSubmissionHTML(w, id, c, "/attachments", time.Now()); err != nil {
		s.log.Error("submission export failed", zap.String("id", id), zap.Error(err))
	}
}

// handleDocumentation renders the detailed documentation page of one
// complaint
func (s *Server) handleDocumentation(w http.ResponseWriter, r *http.Request) {
	id := getURLParam(r, "id")
	c, err := s.store.Get(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.WriteDocumentationHTML(w, id, c, deadline.Today(), time.Now()); err != nil {
		s.log.Error("documentation export failed", zap.String("id", id), zap.Error(err))
	}
}
