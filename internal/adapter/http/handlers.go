package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

type Handler struct{ deps map[string]Pinger }

func NewHandler(deps map[string]Pinger) *Handler { return &Handler{deps: deps} }

// Health answers 200 when every dependency pings, 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	code, status := http.StatusOK, "ok"
	deps := make(map[string]string, len(h.deps))
	for name, ping := range h.deps {
		if err := ping(ctx); err != nil {
			deps[name] = err.Error()
			code, status = http.StatusServiceUnavailable, "degraded"
			continue
		}
		deps[name] = "ok"
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"deps":   deps,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
