package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/response"
	"github.com/stemsi/placement-backend/internal/service"
)

var validationCodes = []struct {
	err  error
	code response.ErrCode
}{
	{service.ErrPasswordMismatch, response.ErrPasswordMismatch},
	{service.ErrPasswordTooShort, response.ErrPasswordTooShort},
	{service.ErrPasswordTooLong, response.ErrPasswordTooLong},
	{service.ErrMissingCollegeName, response.ErrMissingCollegeName},
	{service.ErrMissingCompanyName, response.ErrMissingCompanyName},
	{service.ErrInvalidEmail, response.ErrInvalidEmail},
	{service.ErrInvalidPhone, response.ErrInvalidPhone},
	{service.ErrInvalidInstitute, response.ErrInvalidInstitute},
	{service.ErrUnknownRole, response.ErrUnknownRole},
}

// fail maps a service error onto the response envelope. Unrecognised errors
// become 500 and are attached to the context for the request log.
func fail(c *gin.Context, err error) {
	var authErr *service.AuthError
	if errors.As(err, &authErr) {
		status, code := http.StatusUnauthorized, response.ErrUserNotFound
		switch authErr.Code {
		case service.AuthWrongPassword:
			code = response.ErrWrongPassword
		case service.AuthTooManyRequests:
			status, code = http.StatusTooManyRequests, response.ErrTooManyAttempts
		}
		response.FailWithMessage(c, status, code, service.AuthMessage(err))
		return
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		for _, vc := range validationCodes {
			if errors.Is(ve.Err, vc.err) {
				response.Fail(c, http.StatusBadRequest, vc.code)
				return
			}
		}
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNotInInstitute):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, docstore.ErrInvalidCursor):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCursor)
	case errors.Is(err, service.ErrInvalidInstitute):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidInstitute)
	case errors.Is(err, service.ErrAlreadyApplied):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyApplied)
	case errors.Is(err, service.ErrJobNotInInstitute):
		response.Fail(c, http.StatusForbidden, response.ErrJobNotInInstitute)
	case errors.Is(err, service.ErrNotJobOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotJobOwner)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
