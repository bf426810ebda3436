package handlers

import (
	"errors"
	"net/http"

	"github.com/taskcamp/taskcamp/internal/application"
)

// httpStatus maps application error variants to transport status codes.
// Anything unrecognized is a store/service failure and fails closed as 500.
func httpStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, application.ErrCredentialExpired):
		return http.StatusUnauthorized, "credential expired"
	case errors.Is(err, application.ErrCredentialInvalid):
		return http.StatusUnauthorized, "invalid credential"
	case errors.Is(err, application.ErrCredentialReuseSuspected):
		return http.StatusUnauthorized, "credential reuse suspected, please log in again"
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, application.ErrEmailNotVerified):
		return http.StatusForbidden, "email not verified"
	case errors.Is(err, application.ErrTicketInvalid):
		return http.StatusBadRequest, "invalid or expired ticket"
	case errors.Is(err, application.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, application.ErrNotAMember):
		return http.StatusNotFound, "not found"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
