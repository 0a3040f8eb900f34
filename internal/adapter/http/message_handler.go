package http

import (
	"net/http"

	"igia-backend/internal/usecase/message"

	"github.com/labstack/echo/v4"
)

type MessageHandler struct{ uc *message.Usecase }

func NewMessageHandler(uc *message.Usecase) *MessageHandler { return &MessageHandler{uc: uc} }

type sendMessageReq struct {
	Subject   string `json:"subject"      validate:"required,max=255"`
	Body      string `json:"body"         validate:"required"`
	ProjectID string `json:"project_id"   validate:"omitempty,hex32"`
	Type      string `json:"message_type" validate:"omitempty,oneof=message notification update"`
}

type replyReq struct {
	Body string `json:"body" validate:"required"`
}

func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Send(c.Request().Context(), actorID(c), message.SendInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MessageHandler) Reply(c echo.Context) error {
	var req replyReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Reply(c.Request().Context(), actorID(c), c.Param("message_id"), req.Body)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *MessageHandler) Inbox(c echo.Context) error {
	dto, err := h.uc.Inbox(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MessageHandler) Sent(c echo.Context) error {
	list, err := h.uc.Sent(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MessageHandler) Detail(c echo.Context) error {
	dto, err := h.uc.Detail(c.Request().Context(), actorID(c), c.Param("message_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *MessageHandler) Archive(c echo.Context) error {
	if err := h.uc.Archive(c.Request().Context(), actorID(c), c.Param("message_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorID(c), c.Param("message_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
