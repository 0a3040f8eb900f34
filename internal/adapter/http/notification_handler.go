package http

import (
	"net/http"
	"strconv"

	"igia-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct{ uc *notification.Usecase }

func NewNotificationHandler(uc *notification.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List serves GET /notifications?limit=N.
func (h *NotificationHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = n
	}
	dto, err := h.uc.List(c.Request().Context(), actorID(c), limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	n, err := h.uc.UnreadCount(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": n})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	dto, err := h.uc.MarkRead(c.Request().Context(), actorID(c), c.Param("notification_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.uc.MarkAllRead(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": n})
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorID(c), c.Param("notification_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
