package handlers

import (
	"net/http"

	"metrobook/internal/domain"
	"metrobook/internal/http/middleware"
	"metrobook/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Internal detail
// is logged server-side and never sent to the caller.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		RespondError(c, http.StatusInternalServerError, "something went wrong")
	}
}
