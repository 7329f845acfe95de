package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	r := s.router

	// Static files with cache headers
	r.Handle("/static/*", s.staticHandler())

	// Health check endpoint
	r.Get("/health", s.handleHealth)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
	})

	// Protected routes - the single operator
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/", s.handleComplaintsList)
		r.Get("/dashboard", s.handleDashboard)

		// Complaints
		r.Get("/complaints", s.handleComplaintsList)
		r.Get("/complaints/new", s.handleNewComplaintPage)
		r.Post("/complaints", s.handleCreateComplaint)
		r.Get("/complaints/{id}", s.handleComplaintDetail)
		r.Post("/complaints/{id}", s.handleUpdateComplaint)
		r.Post("/complaints/{id}/close", s.handleCloseComplaint)
		r.Post("/complaints/{id}/delete", s.handleDeleteComplaint)
		r.Post("/complaints/{id}/notes", s.handleAddNote)

		// Attachments
		r.Post("/complaints/{id}/attachments", s.handleUploadAttachment)
		r.Post("/complaints/{id}/attachments/{name}/delete", s.handleDeleteAttachment)
		r.Get("/attachments/{name}", s.handleDownloadAttachment)

		// Printable label
		r.Get("/complaints/{id}/qr", s.handleComplaintQR)

		// Search
		r.Get("/search", s.handleSearch)

		// Exports
		r.Get("/exports", s.handleExportPage)
		r.Get("/exports/list", s.handleExportList)
		r.Get("/complaints/{id}/submission.txt", s.handleSubmissionText)
		r.Get("/complaints/{id}/submission.html", s.handleSubmissionHTML)
		r.Get("/complaints/{id}/documentation.html", s.handleDocumentation)
	})
}

// staticHandler serves static files with caching
func (s *Server) staticHandler() http.Handler {
	// Validate and clean static directory path
	staticDir := filepath.Clean("./static")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract the file path from the URL
		urlPath := strings.TrimPrefix(r.URL.Path, "/static/")

		// Clean and validate the path to prevent directory traversal
		cleanPath := filepath.Clean(urlPath)
		if strings.Contains(cleanPath, "..") {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// Full path to the file
		fullPath := filepath.Join(staticDir, cleanPath)

		// Verify the file is within the static directory
		absStaticDir, _ := filepath.Abs(staticDir)
		absFullPath, _ := filepath.Abs(fullPath)
		if !strings.HasPrefix(absFullPath, absStaticDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		// Check if file exists
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		// Set cache headers for static assets (1 week in production)
		if !s.config.Debug {
			w.Header().Set("Cache-Control", "public, max-age=604800")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		http.ServeFile(w, r, fullPath)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}
