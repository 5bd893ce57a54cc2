// Package handlers implements the HTTP request handlers of the LeadScout API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/turtacn/LeadScout/pkg/errors"
	"github.com/turtacn/LeadScout/pkg/types/common"
)

// respond writes a success envelope with the given status code.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, common.NewSuccessResponse(data))
}

// respondError maps an error to its HTTP status and writes an error envelope.
// Unclassified errors are masked so internal details never reach callers.
func respondError(c *gin.Context, err error) {
	code := appErrors.GetCode(err)
	status := statusFor(code)

	message := "internal server error"
	if status != http.StatusInternalServerError {
		var ae *appErrors.AppError
		if errors.As(err, &ae) {
			message = ae.Message
		} else {
			message = err.Error()
		}
	}

	c.AbortWithStatusJSON(status, common.NewErrorResponse(string(code), message))
}

// respondBindError reports a request-binding failure as a validation error.
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest,
		common.NewErrorResponse(string(appErrors.ErrCodeValidation), "invalid request: "+err.Error()))
}

// parseRunID extracts and validates the :id path parameter.  On failure it
// writes a 400 response and returns false.
func parseRunID(c *gin.Context) (common.ID, bool) {
	id := common.ID(c.Param("id"))
	if err := id.Validate(); err != nil {
		respondError(c, appErrors.InvalidParam("invalid run id: "+err.Error()))
		return "", false
	}
	return id, true
}

// statusFor maps an application error code to an HTTP status.
func statusFor(code appErrors.ErrorCode) int {
	switch code {
	case appErrors.ErrCodeRunNotFound, appErrors.ErrCodeNotFound:
		return http.StatusNotFound
	case appErrors.ErrCodePlanInvalid, appErrors.ErrCodeBadRequest, appErrors.ErrCodeValidation:
		return http.StatusBadRequest
	case appErrors.ErrCodeRunNotCompleted, appErrors.ErrCodeRunStateConflict, appErrors.ErrCodeConflict:
		return http.StatusConflict
	case appErrors.ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

//Personal.AI order the ending
