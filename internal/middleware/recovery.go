package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns panics into a 500 error envelope. The
// underlying message is exposed only outside production.
func RecoveryMiddleware(zapLogger *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		zapLogger.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
		)

		message := "Internal server error"
		if !production {
			message = fmt.Sprintf("%v", recovered)
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": message,
		})
	})
}
