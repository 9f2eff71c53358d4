package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nftrade/weave/errors"
	"github.com/nftrade/weave/x/swap"
)

// JSONErrorHandler returns an error handler that renders echo errors as
// JSON.
func JSONErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, ErrorResponse{
				Error: http.StatusText(he.Code),
				Code:  he.Code,
			})
			return
		}
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  http.StatusInternalServerError,
		})
	}
}

// httpStatus maps a ledger error to the HTTP status code returned to the
// client.
func httpStatus(err error) int {
	switch {
	case swap.IsPreconditionFailed(err):
		return http.StatusPreconditionFailed
	case swap.ErrNotCompliant.Is(err), swap.ErrInvalidSwapSpec.Is(err):
		return http.StatusUnprocessableEntity
	case swap.ErrTransferFailed.Is(err):
		return http.StatusBadGateway
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrUnauthorized.Is(err):
		return http.StatusForbidden
	case errors.ErrDuplicate.Is(err), errors.ErrInvalidState.Is(err), errors.ErrImmutable.Is(err):
		return http.StatusConflict
	case errors.ErrInput.Is(err), errors.ErrEmpty.Is(err), errors.ErrMetadata.Is(err),
		errors.ErrMsg.Is(err), errors.ErrType.Is(err), errors.ErrModel.Is(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail renders an error returned by the ledger. Errors that were not
// registered are redacted unless the server runs in debug mode.
func (h *Handlers) fail(c echo.Context, err error) error {
	code, log := errors.ABCIInfo(err, h.Debug)
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).Error("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: log, Code: status, ABCICode: code})
}

// badRequest renders an error found in the request itself.
func (h *Handlers) badRequest(c echo.Context, msg string, details interface{}) error {
	resp := ErrorResponse{Error: msg, Code: http.StatusBadRequest}
	if h.Debug {
		resp.Details = details
	}
	return c.JSON(http.StatusBadRequest, resp)
}
