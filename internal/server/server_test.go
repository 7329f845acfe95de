package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"reklamapp/internal/attachments"
	"reklamapp/internal/config"
	"reklamapp/internal/domain"
	"reklamapp/internal/repository/jsonfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	store, err := jsonfile.New(filepath.Join(dir, "complaints.json"), zap.NewNop())
	require.NoError(t, err)
	attach, err := attachments.NewManager(filepath.Join(dir, "photos"), zap.NewNop())
	require.NoError(t, err)

	cfg := &config.Config{
		Debug:  true,
		Server: config.Server{Host: "localhost", Port: 8080},
		Auth: config.Auth{
			JWTSecret:       "test-secret",
			ExpirationHours: 1,
			AdminPassword:   "secret",
		},
	}

	srv, err := New(cfg, store, attach, nil, zap.NewNop())
	require.NoError(t, err)
	return srv
}

func newTestComplaint() *domain.Complaint {
	c := domain.New("Tempur")
	c.Customer = "Kiss Péter"
	c.ProductName = "Tempur matrac"
	c.StartDate = "2024-03-01"
	c.DeadlineDays = "30"
	return c
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/complaints", "/search", "/dashboard", "/exports"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.GetRouter().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestValidTokenPassesMiddleware(t *testing.T) {
	srv := newTestServer(t)

	token, err := srv.generateToken()
	require.NoError(t, err)

	// The QR endpoint needs no templates, so a missing complaint proves the
	// request made it past the auth middleware.
	req := httptest.NewRequest(http.MethodGet, "/complaints/nincs-ilyen/qr", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBearerTokenFallback(t *testing.T) {
	srv := newTestServer(t)

	token, err := srv.generateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/complaints/nincs-ilyen/qr", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClosedComplaintRefusesAttachmentUpload(t *testing.T) {
	srv := newTestServer(t)

	c := newTestComplaint()
	c.Status = "closed"
	require.NoError(t, srv.store.Create("RK-2024-001", c))

	token, err := srv.generateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/complaints/RK-2024-001/attachments", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("titkos")
	require.NoError(t, err)

	assert.True(t, checkPasswordHash("titkos", hash))
	assert.False(t, checkPasswordHash("rossz", hash))
}
