package middleware

import (
	"github.com/esnupy/lafa/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContext assigns a request id and propagates it (plus the
// authenticated user/role, when present) into the standard context so
// services and repositories never touch gin.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Header("X-Request-ID", rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		if uid := c.GetString("user_id"); uid != "" {
			ctx = contextutil.WithUserID(ctx, uid)
		}
		if role := c.GetString("role"); role != "" {
			ctx = contextutil.WithRole(ctx, role)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
