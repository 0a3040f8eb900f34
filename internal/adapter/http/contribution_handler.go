package http

import (
	"net/http"

	"igia-backend/internal/usecase/contribution"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ContributionHandler struct{ uc *contribution.Usecase }

func NewContributionHandler(uc *contribution.Usecase) *ContributionHandler {
	return &ContributionHandler{uc: uc}
}

// Campaign link rules (exactly one, matching type) are checked by the usecase.
type contributionReq struct {
	CampaignID       string          `json:"campaign_id"       validate:"omitempty,hex32"`
	LoanCampaignID   string          `json:"loan_campaign_id"  validate:"omitempty,hex32"`
	Amount           decimal.Decimal `json:"amount"            validate:"money"`
	Type             string          `json:"contribution_type" validate:"omitempty,oneof=donation loan"`
	PaymentMethod    string          `json:"payment_method"    validate:"omitempty,oneof=stripe paypal mtn orange other"`
	TransactionID    string          `json:"transaction_id"    validate:"max=255"`
	PaymentStatus    string          `json:"payment_status"    validate:"omitempty,oneof=pending completed failed"`
	ContributorName  string          `json:"contributor_name"  validate:"max=255"`
	ContributorEmail string          `json:"contributor_email" validate:"omitempty,email"`
}

func (h *ContributionHandler) Create(c echo.Context) error {
	var req contributionReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), actorID(c), contribution.CreateInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ContributionHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), actorID(c), c.Param("contribution_id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Delete leaves the campaign's cached total untouched.
func (h *ContributionHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorID(c), c.Param("contribution_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ContributionHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), actorID(c), c.Param("contribution_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) ListMine(c echo.Context) error {
	dto, err := h.uc.ListMine(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) ListForCampaign(c echo.Context) error {
	dto, err := h.uc.ListForCampaign(c.Request().Context(), actorID(c), c.Param("campaign_id"), false)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContributionHandler) ListForLoanCampaign(c echo.Context) error {
	dto, err := h.uc.ListForCampaign(c.Request().Context(), actorID(c), c.Param("loan_campaign_id"), true)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
