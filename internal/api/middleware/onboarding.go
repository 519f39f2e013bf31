package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/relatify/relatify_go_server/internal/pkg/response"
	"github.com/relatify/relatify_go_server/internal/service"
)

// OnboardingGate 引导门禁中间件，未完成引导不允许生成类操作
func OnboardingGate(onboardingService *service.OnboardingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		completed, err := onboardingService.IsCompleted(userID)
		if err != nil {
			response.ServerError(c, "引导状态检查失败")
			c.Abort()
			return
		}

		if !completed {
			response.PermissionError(c, "请先完成引导设置")
			c.Abort()
			return
		}

		c.Next()
	}
}
