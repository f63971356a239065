package router

import (
	"time"

	"cadastro/controllers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs method, path, status, latency and the logged user.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if user, ok := controllers.GetUserLogged(c); ok {
			fields = append(fields, zap.String("usuario", user.ID))
		}
		zap.L().Info("request", fields...)
	}
}
