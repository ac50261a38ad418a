package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorStatus maps domain error classes onto HTTP status codes.
// Tracking code format and checksum failures get 422 rather than 400 so
// clients can tell a mistyped code from a structurally broken request.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, kernel.ErrTrackingCodeFormat),
		errors.Is(err, kernel.ErrTrackingCodeChecksum):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrStateConflict),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders a domain error as a JSON reply.
func writeError(ctx echo.Context, err error) error {
	status := errorStatus(err)
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// writeBadRequest renders a 400 with an explicit message, for failures that
// happen before a domain error exists (malformed JSON, bad path parameters).
func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
