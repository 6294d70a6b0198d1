package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a business error to its client-facing status. Anything
// that is not a BusinessError is a system fault and becomes a 500.
func Respond(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindValidation:
		Write(c, http.StatusBadRequest, be.Code, be.Message)
	case KindConflict, KindSlotUnavailable:
		Write(c, http.StatusConflict, be.Code, be.Message)
	case KindInvalidTransition:
		Write(c, http.StatusUnprocessableEntity, be.Code, be.Message)
	case KindNotFound:
		Write(c, http.StatusNotFound, be.Code, be.Message)
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}
