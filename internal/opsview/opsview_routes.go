package opsview

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	overview := r.Group("/overview")
	overview.Use(middleware.AuthMiddleware())
	overview.Use(middleware.RequestContext())
	{
		overview.GET("",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, "overview", "read"),
			h.GetSnapshot,
		)
	}
}
