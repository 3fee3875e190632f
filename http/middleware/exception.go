package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-storage-gateway/infra"
	"github.com/tnqbao/gau-storage-gateway/utils"
)

// ExceptionMiddleware is the outermost safety net: panics and handler
// errors that were not already written become envelope responses. Internal
// detail never reaches the caller.
func ExceptionMiddleware(logger *infra.LoggerClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithContextf(c.Request.Context(), nil, "[HTTP] Panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					utils.ErrorResponse("An error occurred while processing your request.", "INTERNAL_SERVER_ERROR"))
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			logger.ErrorWithContextf(c.Request.Context(), err, "[HTTP] Unhandled handler error")
			status, code, message := utils.TranslateError(err)
			c.JSON(status, utils.ErrorResponse(message, code))
		}
	}
}
