package middleware

import (
	"net/http"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const AuthKey = "auth"

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		send := c.MustGet("send").(func(r *types.Response))
		if token == "" {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "token not found"}))
			c.Abort()
			return
		}

		admin, err := jwt.ValidateToken(token)
		if err != nil {
			send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "invalid token", Error: err}))
			c.Abort()
			return
		}

		c.Set(AuthKey, *admin)
		c.Next()
	}
}

// GetAdmin returns the admin stored by AuthMiddleware.
func GetAdmin(c *gin.Context) (types.AdminWithAuth, bool) {
	v, ok := c.Get(AuthKey)
	if !ok {
		return types.AdminWithAuth{}, false
	}
	admin, ok := v.(types.AdminWithAuth)
	return admin, ok
}
