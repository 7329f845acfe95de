package server

import (
	"net/http"
	"time"
)

// PageData holds common data for all page templates
type PageData struct {
	Title  string
	Config interface{}
	Year   int
	Auth   bool
	Flash  *FlashMessage
	Data   interface{}
}

// FlashMessage represents a flash message
type FlashMessage struct {
	Type    string // success, error, warning, info
	Message string
}

// newPageData creates a new PageData with common fields
func (s *Server) newPageData(r *http.Request, title string) *PageData {
	return &PageData{
		Title:  title,
		Config: s.config,
		Year:   time.Now().Year(),
		Auth:   getSessionClaims(r) != nil,
	}
}

// render renders a template with the given data
func (s *Server) render(w http.ResponseWriter, r *http.Request, template string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.templates.Render(w, template, data); err != nil {
		http.Error(w, "Error rendering page: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleLoginPage renders the login page
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r, "Bejelentkezés")
	s.render(w, r, "pages/login.html", data)
}

// handleLogin processes the login form
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error processing form", http.StatusBadRequest)
		return
	}

	password := r.FormValue("password")
	if !checkPasswordHash(password, s.adminPasswordHash) {
		data := s.newPageData(r, "Bejelentkezés")
		data.Flash = &FlashMessage{Type: "error", Message: "Hibás jelszó"}
		s.render(w, r, "pages/login.html", data)
		return
	}

	token, err := s.generateToken()
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	maxAge := s.config.Auth.ExpirationHours * 3600
	s.setAuthCookie(w, token, maxAge)

	http.Redirect(w, r, "/complaints", http.StatusSeeOther)
}

// handleLogout clears the session cookie
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
