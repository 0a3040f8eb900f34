package http

import (
	"net/http"
	"time"

	"igia-backend/internal/usecase/project"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProjectHandler struct{ uc *project.Usecase }

func NewProjectHandler(uc *project.Usecase) *ProjectHandler { return &ProjectHandler{uc: uc} }

type submitProjectReq struct {
	EntrepreneurID   string          `json:"entrepreneur_id"   validate:"omitempty,hex32"`
	Title            string          `json:"title"             validate:"required,max=255"`
	ShortDescription string          `json:"short_description" validate:"required,max=255"`
	Description      string          `json:"description"       validate:"required"`
	TargetAmount     decimal.Decimal `json:"target_amount"     validate:"money"`
	Deadline         *time.Time      `json:"deadline"`
}

type updateProjectReq struct {
	Title            *string          `json:"title"             validate:"omitempty,max=255"`
	ShortDescription *string          `json:"short_description" validate:"omitempty,max=255"`
	Description      *string          `json:"description"`
	TargetAmount     *decimal.Decimal `json:"target_amount"     validate:"omitempty,money"`
	Deadline         *time.Time       `json:"deadline"`
}

type reasonReq struct {
	Reason string `json:"reason" validate:"max=1000"`
}

func (h *ProjectHandler) Submit(c echo.Context) error {
	var req submitProjectReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), actorID(c), project.SubmitInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), actorID(c), c.Param("project_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List serves GET /projects; ?status= lists by status, otherwise the caller's own projects.
func (h *ProjectHandler) List(c echo.Context) error {
	var (
		list []project.ProjectDTO
		err  error
	)
	if status := c.QueryParam("status"); status != "" {
		list, err = h.uc.ListByStatus(c.Request().Context(), actorID(c), status)
	} else {
		list, err = h.uc.ListMine(c.Request().Context(), actorID(c))
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) Approve(c echo.Context) error {
	dto, err := h.uc.Approve(c.Request().Context(), actorID(c), c.Param("project_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Reject(c echo.Context) error {
	var req reasonReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Reject(c.Request().Context(), actorID(c), c.Param("project_id"), req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Complete(c echo.Context) error {
	dto, err := h.uc.Complete(c.Request().Context(), actorID(c), c.Param("project_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	var req updateProjectReq
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dto, err := h.uc.Update(c.Request().Context(), actorID(c), c.Param("project_id"), project.UpdateInput(req))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), actorID(c), c.Param("project_id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
