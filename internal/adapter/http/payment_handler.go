package http

import (
	"net/http"

	"igia-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type proofReq struct {
	Method          string `json:"payment_method"   validate:"required,oneof=mobile_money stripe paypal"`
	TransactionCode string `json:"transaction_code" validate:"max=255"`
	ProofURL        string `json:"proof_url"        validate:"required,url"`
}

type subscriptionReq struct {
	ProofURL string `json:"proof_url" validate:"required,url"`
}

// SubmitProof handles POST /projects/:project_id/payment.
func (h *PaymentHandler) SubmitProof(c echo.Context) error {
	var req proofReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.SubmitProof(c.Request().Context(), actorID(c), c.Param("project_id"), payment.ProofInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) Validate(c echo.Context) error {
	dto, err := h.uc.Validate(c.Request().Context(), actorID(c), c.Param("payment_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) Reject(c echo.Context) error {
	var req reasonReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Reject(c.Request().Context(), actorID(c), c.Param("payment_id"), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) ListAwaiting(c echo.Context) error {
	list, err := h.uc.ListAwaiting(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PaymentHandler) SubmitSubscription(c echo.Context) error {
	var req subscriptionReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.SubmitSubscription(c.Request().Context(), actorID(c), payment.ProofInput{ProofURL: req.ProofURL})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) ValidateSubscription(c echo.Context) error {
	dto, err := h.uc.ValidateSubscription(c.Request().Context(), actorID(c), c.Param("payment_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) ListPendingSubscriptions(c echo.Context) error {
	list, err := h.uc.ListPendingSubscriptions(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
