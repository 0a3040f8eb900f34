package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"igia-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubParser map[string]user.Principal

func (s stubParser) Parse(token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, errors.New("bad token")
	}
	return p, nil
}

func TestAuth(t *testing.T) {
	tokens := stubParser{"good": {UserID: testUserID, Role: user.RoleEntrepreneur}}
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, p.UserID)
	}, Auth(tokens))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
		{"scheme is case-insensitive", "bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && rec.Body.String() != testUserID {
				t.Fatalf("principal not stored: %q", rec.Body.String())
			}
		})
	}
}

func TestPrincipalFrom_Missing(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := PrincipalFrom(c); ok {
		t.Fatal("expected no principal")
	}
}

func TestRequestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/missing", func(c echo.Context) error { return c.NoContent(http.StatusNotFound) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("want 3 log lines, got %d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, en := range entries {
		if en.Level != want[i] {
			t.Fatalf("line %d (%v): level %s, want %s", i, en.ContextMap()["uri"], en.Level, want[i])
		}
	}
	if got := entries[2].ContextMap()["status"]; got != int64(http.StatusInternalServerError) {
		t.Fatalf("status field = %v", got)
	}
}
