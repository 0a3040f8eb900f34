package http

import (
	"context"
	"net/http"

	"igia-backend/internal/usecase/withdrawal"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WithdrawalHandler struct{ uc *withdrawal.Usecase }

func NewWithdrawalHandler(uc *withdrawal.Usecase) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc}
}

type withdrawalReq struct {
	ProjectID string          `json:"project_id" validate:"required,hex32"`
	Amount    decimal.Decimal `json:"amount"     validate:"money"`
	Reason    string          `json:"reason"     validate:"max=1000"`
}

func (h *WithdrawalHandler) Request(c echo.Context) error {
	var req withdrawalReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Request(c.Request().Context(), actorID(c), withdrawal.RequestInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WithdrawalHandler) Approve(c echo.Context) error {
	return h.process(c, h.uc.Approve)
}

func (h *WithdrawalHandler) Reject(c echo.Context) error {
	return h.process(c, h.uc.Reject)
}

func (h *WithdrawalHandler) MarkPaid(c echo.Context) error {
	return h.process(c, h.uc.MarkPaid)
}

func (h *WithdrawalHandler) process(c echo.Context, op func(ctx context.Context, actorID, requestID string) (*withdrawal.RequestDTO, error)) error {
	dto, err := op(c.Request().Context(), actorID(c), c.Param("request_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WithdrawalHandler) ListMine(c echo.Context) error {
	list, err := h.uc.ListMine(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *WithdrawalHandler) ListPending(c echo.Context) error {
	list, err := h.uc.ListPending(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
