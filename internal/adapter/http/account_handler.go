package http

import (
	"net/http"

	"igia-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

// field order mirrors account.RegisterInput
type registerReq struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
	FullName    string `json:"full_name"    validate:"max=150"`
	Phone       string `json:"phone"        validate:"max=20"`
	City        string `json:"city"         validate:"max=100"`
	Role        string `json:"role"         validate:"required,oneof=entrepreneur investisseur intermediaire"`
	CountryCode string `json:"country_code" validate:"omitempty,max=5"`

	CompanyName      string          `json:"company_name"      validate:"max=255"`
	Experience       string          `json:"experience"`
	Company          string          `json:"company"           validate:"max=255"`
	CapitalAvailable decimal.Decimal `json:"capital_available"`
	Organization     string          `json:"organization"      validate:"max=255"`
}

// field order mirrors account.RepresentedInput
type representedReq struct {
	Email       string `json:"email"        validate:"required,email"`
	FullName    string `json:"full_name"    validate:"required,max=150"`
	Phone       string `json:"phone"        validate:"max=20"`
	City        string `json:"city"         validate:"max=100"`
	CountryCode string `json:"country_code" validate:"omitempty,max=5"`
	CompanyName string `json:"company_name" validate:"max=255"`
	Experience  string `json:"experience"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AccountHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Register(c.Request().Context(), account.RegisterInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AccountHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Login(c.Request().Context(), account.LoginInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) Me(c echo.Context) error {
	dto, err := h.uc.Me(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Deactivate handles DELETE /users/:user_id; "me" targets the caller.
func (h *AccountHandler) Deactivate(c echo.Context) error {
	target := c.Param("user_id")
	if target == "me" {
		target = actorID(c)
	}
	if err := h.uc.Deactivate(c.Request().Context(), actorID(c), target); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) Countries(c echo.Context) error {
	list, err := h.uc.Countries(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AccountHandler) Represent(c echo.Context) error {
	if err := h.uc.Represent(c.Request().Context(), actorID(c), c.Param("user_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateRepresented handles POST /intermediaire/entrepreneurs.
func (h *AccountHandler) CreateRepresented(c echo.Context) error {
	var req representedReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.CreateRepresented(c.Request().Context(), actorID(c), account.RepresentedInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AccountHandler) VerifyIntermediaire(c echo.Context) error {
	if err := h.uc.VerifyIntermediaire(c.Request().Context(), actorID(c), c.Param("user_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) Unrepresent(c echo.Context) error {
	if err := h.uc.Unrepresent(c.Request().Context(), actorID(c), c.Param("user_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) ListRepresented(c echo.Context) error {
	list, err := h.uc.ListRepresented(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
