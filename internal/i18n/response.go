package i18n

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError writes {"kind": ..., "error": ...} with the status of err.
// Errors that are not an ErrorWithCode are reported as Internal.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	kind := KindInternal
	msg := TranslateError(c, ErrInternalServer)

	var errWithCode *ErrorWithCode
	if errors.As(err, &errWithCode) {
		statusCode = int(errWithCode.GetCode())
		kind = errWithCode.Kind
		msg = TranslateError(c, errWithCode)
	}

	c.AbortWithStatusJSON(statusCode, gin.H{"kind": kind, "error": msg})
}

// RespondWithSuccess sends a success HTTP response with an internationalized message
func RespondWithSuccess(c *gin.Context, statusCode int, msgID string, data map[string]any, payload any) {
	response := gin.H{
		"message": TranslateMessage(c, msgID, data),
	}

	switch p := payload.(type) {
	case nil:
	case gin.H:
		for k, v := range p {
			response[k] = v
		}
	case map[string]any:
		for k, v := range p {
			response[k] = v
		}
	default:
		response["data"] = payload
	}

	c.JSON(statusCode, response)
}

// RespondOK sends a success HTTP response with status code 200
func RespondOK(c *gin.Context, msgID string, data map[string]any, payload any) {
	RespondWithSuccess(c, http.StatusOK, msgID, data, payload)
}
