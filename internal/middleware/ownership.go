package middleware

import (
	"context"
	"first20_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// OwnershipChecker 判断资源是否属于用户，不存在与不属于同样返回 false
type OwnershipChecker interface {
	Owns(ctx context.Context, userID, resourceID uint) (bool, error)
}

// RequireOwnership 校验路径参数 param 指向的资源属于当前用户，否则 404
func RequireOwnership(param string, checker OwnershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			util.BadRequest(c, "invalid "+param)
			c.Abort()
			return
		}

		ok, err := checker.Owns(c.Request.Context(), claims.UserID, uint(id))
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}
		if !ok {
			util.NotFound(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
