package shift

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	shifts.Use(middleware.RequestContext())
	{
		shifts.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "shift", "read"),
			h.GetAll,
		)
		shifts.POST("/check-in",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "shift", "write"),
			h.CheckIn,
		)
		shifts.POST("/check-out",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "shift", "write"),
			h.CheckOut,
		)
	}
}
