package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-slots/internal/handler"
	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

// ErrorHandler renders the last error a handler attached with c.Error, unless
// a response was already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last().Err
		appErr := apperrors.As(lastErr)

		if appErr.Code == apperrors.ErrInternal {
			log.Error().
				Err(lastErr).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}
		handler.RespondError(c, lastErr)
	}
}
