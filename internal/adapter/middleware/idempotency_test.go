package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"igia-backend/internal/domain/user"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const testUserID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

// fakeAuth stands in for Auth: the X-Test-User header becomes the principal.
func fakeAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Request().Header.Get("X-Test-User"); id != "" {
			SetPrincipal(c, user.Principal{UserID: id, Role: user.RoleInvestisseur})
		}
		return next(c)
	}
}

// helper: new Echo with the middleware and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(fakeAuth, IdempotencyMiddleware(NewIdempotencyStore(rdb, ttl), zap.NewNop()))
	e.POST("/contributions", handler)
	e.GET("/contributions", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

// okCreatedHandler is the stored-then-replayed response
func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/contributions", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	// base headers (valid) to start from
	valid := map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", // 32-hex (valid)
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   testUserID,
	}

	// missing Ax-Request-Id
	h := map[string]string{
		"Ax-Request-At": valid["Ax-Request-At"],
		"X-Test-User":   valid["X-Test-User"],
	}
	rec := doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing Ax-Request-Id => want 400, got %d", rec.Code)
	}

	// invalid Ax-Request-Id
	h = map[string]string{
		"Ax-Request-Id": "NOT-VALID",
		"Ax-Request-At": valid["Ax-Request-At"],
		"X-Test-User":   valid["X-Test-User"],
	}
	rec = doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid Ax-Request-Id => want 400, got %d", rec.Code)
	}

	// invalid Ax-Request-At format
	h = map[string]string{
		"Ax-Request-Id": valid["Ax-Request-Id"],
		"Ax-Request-At": "not-a-time",
		"X-Test-User":   valid["X-Test-User"],
	}
	rec = doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid Ax-Request-At => want 400, got %d", rec.Code)
	}

	// Ax-Request-At too skewed (past)
	h = map[string]string{
		"Ax-Request-Id": valid["Ax-Request-Id"],
		"Ax-Request-At": time.Now().UTC().Add(-maxClockSkew - time.Minute).Format(time.RFC3339),
		"X-Test-User":   valid["X-Test-User"],
	}
	rec = doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Ax-Request-At skew => want 400, got %d", rec.Code)
	}

	// no authenticated user
	h = map[string]string{
		"Ax-Request-Id": valid["Ax-Request-Id"],
		"Ax-Request-At": valid["Ax-Request-At"],
	}
	rec = doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]int{"x": 1}), h)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing principal => want 401, got %d", rec.Code)
	}
}

func Test_KeyIsScopedPerUser(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]int{"call": calls})
	})

	body := `{"amount":"10.00"}`
	for _, u := range []string{testUserID, "cccccccccccccccccccccccccccccccc"} {
		h := map[string]string{
			"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
			"X-Test-User":   u,
		}
		if rec := doReq(t, e, http.MethodPost, "/contributions", bytes.NewReader([]byte(body)), h); rec.Code != http.StatusCreated {
			t.Fatalf("user %s => want 201, got %d", u, rec.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("same request id from two users must reach the handler twice, got %d", calls)
	}
}

func Test_HappyPath_Then_Replay(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	h := map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   testUserID,
	}
	body := mkJSONBody(t, map[string]any{"amount": "300.00"})

	// First request -> goes through handler (201, {"ok":true})
	rec1 := doReq(t, e, http.MethodPost, "/contributions", body, h)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first request => want 201, got %d, body: %s", rec1.Code, rec1.Body.String())
	}

	// Second request with SAME headers & body -> replay stored response (also 201)
	rec2 := doReq(t, e, http.MethodPost, "/contributions", mkJSONBody(t, map[string]any{"amount": "300.00"}), h)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay => want 201, got %d, body: %s", rec2.Code, rec2.Body.String())
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("replay body mismatch: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
	if rec1.Header().Get(HeaderReplayed) != "" || rec2.Header().Get(HeaderReplayed) != "true" {
		t.Fatalf("replay header: first=%q second=%q", rec1.Header().Get(HeaderReplayed), rec2.Header().Get(HeaderReplayed))
	}
}

func Test_Conflict_When_InProgress(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	method := http.MethodPost
	path := "/contributions"
	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	userID := testUserID
	body := []byte(`{"x":1}`)

	// Seed an in-progress lock so Reserve fails and Load sees InProgress=true
	store := NewIdempotencyStore(rdb, 2*time.Minute)
	key := store.Key(method, path, userID, reqID)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash(body),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if ok, err := store.Reserve(context.Background(), key, entry); err != nil || !ok {
		t.Fatalf("seed provisional failed, ok=%v err=%v", ok, err)
	}

	h := map[string]string{
		"Ax-Request-Id": reqID,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   userID,
	}
	rec := doReq(t, e, method, path, bytes.NewReader(body), h)

	if rec.Code != http.StatusConflict {
		t.Fatalf("in-progress => want 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func Test_Conflict_When_SameReqID_DifferentBody(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 2*time.Minute, okCreatedHandler)

	method := http.MethodPost
	path := "/contributions"
	reqID := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	userID := testUserID

	body1 := []byte(`{"x":1}`)
	body2 := []byte(`{"x":2}`)

	// Seed a final entry for body1; body2 under the same id must conflict
	store := NewIdempotencyStore(rdb, 5*time.Minute)
	key := store.Key(method, path, userID, reqID)
	final := idempEntry{
		InProgress:  false,
		Code:        http.StatusCreated,
		Body:        []byte(`{"ok":true}`), // any stored body
		BodySHA256:  bodyHash(body1),
		RequestID:   reqID,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.Complete(context.Background(), key, final); err != nil {
		t.Fatalf("seed final failed: %v", err)
	}

	h := map[string]string{
		"Ax-Request-Id": reqID,
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   userID,
	}
	rec := doReq(t, e, method, path, bytes.NewReader(body2), h)

	if rec.Code != http.StatusConflict {
		t.Fatalf("different body same reqID => want 409, got %d", rec.Code)
	}
}

func Test_StoreUnavailable_Returns503(t *testing.T) {
	// Create a client that points to a closed address → SetNX error
	// (fast fail vs waiting the whole context)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	e := setupEcho(rdb, time.Minute, okCreatedHandler)

	h := map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   testUserID,
	}
	rec := doReq(t, e, http.MethodPost, "/contributions", bytes.NewReader([]byte(`{}`)), h)

	if rec.Code != http.StatusServiceUnavailable && rec.Code != http.StatusBadGateway {
		// expect 503 from the middleware path
		t.Fatalf("store unavailable => want 503-ish, got %d", rec.Code)
	}
}

func Test_ServerError_ReleasesKey(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		if calls == 1 {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return c.JSON(http.StatusCreated, map[string]bool{"ok": true})
	})
	h := map[string]string{
		"Ax-Request-Id": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		"Ax-Request-At": time.Now().UTC().Format(time.RFC3339),
		"X-Test-User":   testUserID,
	}

	if rec := doReq(t, e, http.MethodPost, "/contributions", bytes.NewReader([]byte(`{}`)), h); rec.Code != http.StatusInternalServerError {
		t.Fatalf("first => want 500, got %d", rec.Code)
	}
	if rec := doReq(t, e, http.MethodPost, "/contributions", bytes.NewReader([]byte(`{}`)), h); rec.Code != http.StatusCreated {
		t.Fatalf("retry after 500 => want 201, got %d", rec.Code)
	}
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func Test_ClientError_IsReplayed(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	calls := 0
	e := setupEcho(rdb, 2*time.Minute, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "validation failed"})
	})
	h := map[string]string{
		"Ax-Request-Id": "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"Ax-Request-At": strconv.FormatInt(time.Now().Unix(), 10),
		"X-Test-User":   testUserID,
	}
	for i := 0; i < 2; i++ {
		if rec := doReq(t, e, http.MethodPost, "/contributions", bytes.NewReader([]byte(`{"amount":0}`)), h); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("attempt %d => want 422, got %d", i+1, rec.Code)
		}
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
}
