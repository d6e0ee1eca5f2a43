package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coinquestapp/coinquest-backend/internal/auth"
	"github.com/coinquestapp/coinquest-backend/pkg/config"
	"github.com/coinquestapp/coinquest-backend/pkg/db/models"
	"github.com/coinquestapp/coinquest-backend/pkg/logger"
	"github.com/google/uuid"
)

type stubSessions struct{ ok bool }

func (s stubSessions) HasSession(context.Context, string) (bool, error) { return s.ok, nil }

type stubAuthService struct {
	loginCalls int
}

func (s *stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	s.loginCalls++
	return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthService) Refresh(context.Context, auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) IssueTokens(context.Context, *models.User) (string, string, error) {
	return "", "", nil
}

func testRouter(t *testing.T, svc auth.Service) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 10}
	return NewRouter(Deps{
		Config:   cfg,
		Logger:   logger.New(logger.Options{ServiceName: "router-test"}),
		Sessions: stubSessions{ok: true},
		Auth:     svc,
	})
}

func TestHealthLive(t *testing.T) {
	router := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-CoinQuest-Env") != "test" {
		t.Fatalf("expected env header")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := testRouter(t, nil)

	paths := []string{
		"/api/v1/users/me",
		"/api/v1/challenges",
		"/api/v1/currency/balance",
		"/api/v1/currency/history",
		"/api/v1/friends",
		"/api/v1/feed",
		"/api/v1/catalog/templates",
		"/api/v1/challenges/" + uuid.NewString(),
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", path, resp.Code)
		}
	}
}

func TestLoginRouteValidatesBody(t *testing.T) {
	svc := &stubAuthService{}
	router := testRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.loginCalls != 0 {
		t.Fatalf("service should not be called for invalid body")
	}
}

func TestLoginRouteReturnsToken(t *testing.T) {
	svc := &stubAuthService{}
	router := testRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"a@b.co","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-CQ-Token") != "access" {
		t.Fatalf("expected access token header")
	}
	if svc.loginCalls != 1 {
		t.Fatalf("expected one login call got %d", svc.loginCalls)
	}
}
