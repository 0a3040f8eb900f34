package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// Allowed client/server clock skew for Ax-Request-At (in UTC).
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

func abort(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware makes mutating requests safe to retry. The key is
// method + route + authenticated user + Ax-Request-Id, so mount it after Auth.
// A repeated request with the same body replays the stored response; 5xx
// responses are not stored and free the key for a retry.
func IdempotencyMiddleware(store *IdempotencyStore, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return abort(c, http.StatusBadRequest, "missing "+HeaderRequestID)
			}
			if !validReqID(reqID) {
				return abort(c, http.StatusBadRequest, "invalid "+HeaderRequestID+" format")
			}
			reqAt, err := parseAxRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return abort(c, http.StatusBadRequest, err.Error())
			}
			if now := nowUTC(); reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return abort(c, http.StatusBadRequest, HeaderRequestAt+" too skewed")
			}
			principal, ok := PrincipalFrom(c)
			if !ok || principal.UserID == "" {
				return abort(c, http.StatusUnauthorized, "missing authenticated user")
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return abort(c, http.StatusBadRequest, "unreadable body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			key := store.Key(req.Method, c.Path(), principal.UserID, reqID)
			fingerprint := idempEntry{
				InProgress:  true,
				BodySHA256:  bodyHash(body),
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			reserved, err := store.Reserve(ctx, key, fingerprint)
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return abort(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				return replay(c, store, key, fingerprint.BodySHA256, log)
			}

			rec := &respRecorder{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be cancelled here
			saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer saveCancel()
			if rec.code >= http.StatusInternalServerError {
				if err := store.Release(saveCtx, key); err != nil {
					log.Warn("idempotency lock not released", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			fingerprint.Code = rec.code
			fingerprint.ContentType = rec.Header().Get(echo.HeaderContentType)
			fingerprint.Body = rec.buf.Bytes()
			fingerprint.CreatedAt = nowUTC()
			if err := store.Complete(saveCtx, key, fingerprint); err != nil {
				log.Warn("idempotency entry not saved", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

// replay answers a request whose key is already taken.
func replay(c echo.Context, store *IdempotencyStore, key, bodySHA string, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), storeTimeout)
	defer cancel()
	cur, err := store.Load(ctx, key)
	switch {
	case errors.Is(err, redis.Nil):
		// lock expired in between; the client can simply retry
		return abort(c, http.StatusConflict, "request is already in progress")
	case err != nil:
		log.Warn("idempotency entry not loaded", zap.String("key", key), zap.Error(err))
		return abort(c, http.StatusServiceUnavailable, "idempotency store unavailable")
	}

	if cur.BodySHA256 != "" && cur.BodySHA256 != bodySHA {
		return abort(c, http.StatusConflict, HeaderRequestID+" reused with different body")
	}
	if cur.InProgress || cur.Code == 0 {
		return abort(c, http.StatusConflict, "request is already in progress")
	}
	contentType := cur.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	}
	c.Response().Header().Set(HeaderReplayed, "true")
	if len(cur.Body) == 0 {
		return c.NoContent(cur.Code)
	}
	return c.Blob(cur.Code, contentType, cur.Body)
}
