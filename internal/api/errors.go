package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/repository"
	"kw8/gym-app/internal/service"
)

// respondError maps service and repository errors to HTTP statuses.
// Anything unrecognized is logged and reported as a 500 with msg.
func respondError(c *gin.Context, log logging.Logger, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrVariantNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrRemoteDisabled):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRemoteUnavailable), errors.Is(err, service.ErrStorageUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrInvalidToken):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		log.Error(c.Request.Context(), msg, "path", c.FullPath(), "err", err)
		abortWithError(c, http.StatusInternalServerError, msg)
	}
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return false
	}
	return true
}
