package http

import (
	"errors"
	"net/http"

	"igia-backend/internal/adapter/middleware"
	"igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/message"
	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/domain/withdrawal"
	"igia-backend/internal/infrastructure/auth"

	"github.com/labstack/echo/v4"
)

var errBadBody = errors.New("invalid body")

// invalidRequestError carries validator output for the 422 details list.
type invalidRequestError struct{ err error }

func (e *invalidRequestError) Error() string { return e.err.Error() }
func (e *invalidRequestError) Unwrap() error { return e.err }

// statusOf maps domain sentinels → HTTP codes; first match wins.
var statusOf = []struct {
	err  error
	code int
}{
	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},

	{user.ErrForbidden, http.StatusForbidden},
	{user.ErrInactive, http.StatusForbidden},
	{user.ErrSubscriptionRequired, http.StatusForbidden},
	{user.ErrNotRepresented, http.StatusForbidden},
	{user.ErrNotVerified, http.StatusForbidden},
	{project.ErrNotOwner, http.StatusForbidden},
	{message.ErrNotRecipient, http.StatusForbidden},

	{user.ErrNotFound, http.StatusNotFound},
	{reference.ErrCountryNotFound, http.StatusNotFound},
	{project.ErrNotFound, http.StatusNotFound},
	{campaign.ErrNotFound, http.StatusNotFound},
	{contribution.ErrNotFound, http.StatusNotFound},
	{notification.ErrNotFound, http.StatusNotFound},
	{message.ErrNotFound, http.StatusNotFound},
	{message.ErrNoRecipient, http.StatusNotFound},
	{payment.ErrNotFound, http.StatusNotFound},
	{withdrawal.ErrNotFound, http.StatusNotFound},

	{user.ErrEmailTaken, http.StatusConflict},
	{project.ErrInvalidTransition, http.StatusConflict},
	{project.ErrNotEditable, http.StatusConflict},
	{campaign.ErrInvalidTransition, http.StatusConflict},
	{campaign.ErrProjectNotOpen, http.StatusConflict},
	{contribution.ErrInvalidTransition, http.StatusConflict},
	{contribution.ErrCampaignInactive, http.StatusConflict},
	{payment.ErrAlreadyValidated, http.StatusConflict},
	{withdrawal.ErrInvalidTransition, http.StatusConflict},
	{withdrawal.ErrPendingExists, http.StatusConflict},

	{user.ErrInvalidRole, http.StatusUnprocessableEntity},
	{user.ErrPasswordTooLong, http.StatusUnprocessableEntity},
	{project.ErrCountryRequired, http.StatusUnprocessableEntity},
	{project.ErrInvalidTarget, http.StatusUnprocessableEntity},
	{campaign.ErrInvalidDates, http.StatusUnprocessableEntity},
	{campaign.ErrInvalidGoal, http.StatusUnprocessableEntity},
	{campaign.ErrInvalidLoanTerms, http.StatusUnprocessableEntity},
	{contribution.ErrBothCampaigns, http.StatusUnprocessableEntity},
	{contribution.ErrNoCampaign, http.StatusUnprocessableEntity},
	{contribution.ErrTypeMismatch, http.StatusUnprocessableEntity},
	{contribution.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{contribution.ErrInvalidMethod, http.StatusUnprocessableEntity},
	{payment.ErrProofRequired, http.StatusUnprocessableEntity},
	{payment.ErrInvalidMethod, http.StatusUnprocessableEntity},
	{payment.ErrCountryRequired, http.StatusUnprocessableEntity},
	{withdrawal.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{withdrawal.ErrExceedsCollected, http.StatusUnprocessableEntity},
}

func statusCode(err error) int {
	for _, s := range statusOf {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return http.StatusInternalServerError
}

// bind decodes and validates the body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errBadBody
	}
	if err := c.Validate(req); err != nil {
		return &invalidRequestError{err: err}
	}
	return nil
}

// fail writes err as an ErrorResponse.
func fail(c echo.Context, err error) error {
	var invalid *invalidRequestError
	switch {
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: errBadBody.Error()})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(invalid.err),
		})
	}
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		middleware.SetCause(c, err)
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
