package http

import (
	"net/http"
	"time"

	"igia-backend/internal/usecase/campaign"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CampaignHandler struct{ uc *campaign.Usecase }

func NewCampaignHandler(uc *campaign.Usecase) *CampaignHandler { return &CampaignHandler{uc: uc} }

// field order mirrors campaign.CreateInput
type campaignReq struct {
	ProjectID   string          `json:"project_id"  validate:"required,hex32"`
	Title       string          `json:"title"       validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	GoalAmount  decimal.Decimal `json:"goal_amount" validate:"money"`
	StartDate   *time.Time      `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
	Activate    bool            `json:"activate"`
}

type loanCampaignReq struct {
	campaignReq
	InterestRate      decimal.Decimal `json:"interest_rate"      validate:"dec2,gte=0,lte=100"`
	RepaymentDuration uint            `json:"repayment_duration" validate:"required,gte=1,lte=360"`
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *CampaignHandler) Create(c echo.Context) error {
	var req campaignReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), actorID(c), campaign.CreateInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CampaignHandler) CreateLoan(c echo.Context) error {
	var req loanCampaignReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	in := campaign.CreateLoanInput{
		CreateInput:       campaign.CreateInput(req.campaignReq),
		InterestRate:      req.InterestRate,
		RepaymentDuration: req.RepaymentDuration,
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), actorID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CampaignHandler) ChangeStatus(c echo.Context) error {
	var req statusReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.ChangeStatus(c.Request().Context(), actorID(c), c.Param("campaign_id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CampaignHandler) ChangeLoanStatus(c echo.Context) error {
	var req statusReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.ChangeLoanStatus(c.Request().Context(), actorID(c), c.Param("loan_campaign_id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CampaignHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("campaign_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CampaignHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.GetLoan(c.Request().Context(), c.Param("loan_campaign_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *CampaignHandler) ListActive(c echo.Context) error {
	list, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CampaignHandler) ListActiveLoans(c echo.Context) error {
	list, err := h.uc.ListActiveLoans(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CampaignHandler) ListForProject(c echo.Context) error {
	dto, err := h.uc.ListForProject(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
