package http

import (
	"errors"
	"net/http"

	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	pkgErrors "github.com/DarshanCode2005/gitmesh/pkg/errors"
	"github.com/DarshanCode2005/gitmesh/pkg/response"
)

var (
	errWorkspaceNotFound   = pkgErrors.NewHTTPError(http.StatusNotFound, "WorkspaceNotFound", "workspace not found")
	errIntegrationNotFound = pkgErrors.NewHTTPError(http.StatusNotFound, "IntegrationNotFound", "no active integration for provider")
	errInvalidSignature    = pkgErrors.NewHTTPError(http.StatusUnauthorized, "InvalidSignature", "invalid webhook signature")
	errLogNotFound         = pkgErrors.NewHTTPError(http.StatusNotFound, "LogNotFound", "webhook log not found")
	errInternal            = pkgErrors.NewHTTPError(http.StatusInternalServerError, "InternalError", response.DefaultErrorMessage)
)

func errInvalidRequest(msg string) *pkgErrors.HTTPError {
	return pkgErrors.NewHTTPError(http.StatusBadRequest, "InvalidRequest", msg)
}

// mapError translates use-case errors into HTTP errors.
// Anything unrecognized is a store or infrastructure failure.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, webhook.ErrWorkspaceNotFound):
		return errWorkspaceNotFound
	case errors.Is(err, webhook.ErrIntegrationNotFound):
		return errIntegrationNotFound
	case errors.Is(err, webhook.ErrInvalidSignature):
		return errInvalidSignature
	case errors.Is(err, webhook.ErrLogNotFound):
		return errLogNotFound
	case webhook.IsHandlerError(err):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, "HandlerError", err.Error())
	default:
		return errInternal
	}
}
