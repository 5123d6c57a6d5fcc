package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gym-class-booking/internal/core/auth"
	"gym-class-booking/internal/domain"
	resp "gym-class-booking/internal/transport/http/response"
)

// AuthJWT 鉴权三步：Bearer 解析 → 库里确认用户还在 → 角色 allow-list。
// token 合法但用户已不存在同样按 401 处理。
func AuthJWT(j *auth.JWTer, users domain.UserRepository, roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail(http.StatusUnauthorized, "Unauthorized access"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, resp.Fail(http.StatusInternalServerError, "Internal server error"))
			return
		}
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail(http.StatusUnauthorized, "Unauthorized access"))
			return
		}
		if len(allowed) > 0 {
			if _, ok := allowed[u.Role]; !ok {
				c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail(http.StatusForbidden, "Forbidden access"))
				return
			}
		}

		c.Set("userId", u.ID)
		c.Set("email", u.Email)
		c.Set("role", string(u.Role))
		c.Next()
	}
}

// CurrentUserID AuthJWT 之后才有值
func CurrentUserID(c *gin.Context) uint64 {
	v, _ := c.Get("userId")
	id, _ := v.(uint64)
	return id
}
