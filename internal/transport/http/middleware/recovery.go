package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "gym-class-booking/internal/transport/http/response"
)

// Recovery 请求内 panic 不打穿进程，统一 500 包络
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("rid", c.GetString("rid")),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					resp.Fail(http.StatusInternalServerError, "Internal server error"))
			}
		}()
		c.Next()
	}
}
