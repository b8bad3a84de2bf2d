package http

import (
	"context"
	"errors"
	"net/http"

	"dentallab/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps the business error taxonomy to HTTP status codes:
// missing/invalid input 400, authorization 403, unknown object 404,
// lost race 409, unmet business precondition 422, upstream failure or
// timed-out transaction 503.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrGuardViolation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrOperationFailed):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		// A statement cancelled by the transaction deadline surfaces the raw
		// context error; it fails the same way an explicit OperationFailed does.
		status = http.StatusServiceUnavailable
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
