// utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	code := CodeInternal
	for k, v := range statusByCode {
		if v == status {
			code = k
			break
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// RespondError writes err using its AppError code. Internal errors are logged
// with the request logger and reported to the client with a generic message.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	status := appErr.HTTPStatus()

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error", "code": appErr.Code})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}
