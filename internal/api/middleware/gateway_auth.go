package middleware

import (
	"github.com/gin-gonic/gin"

	"mentor-lab/backend/pkg/response"
)

// 身份认证由接入网关完成，服务只信任网关注入的身份头。
// 部署时必须保证这两个头无法被外部请求直接带入。
const (
	headerGatewayUser = "X-Gateway-User"
	headerGatewayRole = "X-Gateway-Role"
)

// GatewayIdentity 网关身份中间件
// 从网关注入的请求头读取账号与角色并放入上下文；缺少身份头则拒绝
func GatewayIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(headerGatewayUser)
		if userID == "" {
			response.Unauthorized(c, 10002, "缺少网关身份头")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", c.GetHeader(headerGatewayRole))

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
