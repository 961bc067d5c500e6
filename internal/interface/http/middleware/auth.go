package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/crosssell/pkg/jwt"
	"github.com/xiebiao/crosssell/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 本服务没有终端用户登录，认证只保护后台管理接口
//    （商品维护、推荐设置、缓存清理、批量导入开关）
// 2. 从Header提取Token → 验证签名与有效期 → 校验Role → 注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// RequireAdmin 要求管理Token
// 使用方式：
//
//	admin := r.Group("/api/v1")
//	admin.Use(authMiddleware.RequireAdmin())
//	admin.POST("/products", handler.CreateProduct)
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "缺少管理Token")
			c.Abort()
			return
		}

		// 2. 解析Token格式
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 校验角色
		if claims.Role != jwt.RoleAdmin {
			response.ErrorWithCode(c, 40104, "无权限访问")
			c.Abort()
			return
		}

		// 5. 将操作者信息注入到Context（后续Handler可以使用）
		c.Set("operator", claims.Subject)
		c.Set("role", claims.Role)

		// 6. 继续处理请求
		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetOperator 从Context获取当前操作者标识
func GetOperator(c *gin.Context) string {
	if operator, exists := c.Get("operator"); exists {
		if s, ok := operator.(string); ok {
			return s
		}
	}
	return ""
}
