package vehicle

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.AuthMiddleware())
	vehicles.Use(middleware.RequestContext())
	{
		vehicles.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "vehicle", "read"),
			h.GetAll,
		)
		vehicles.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "vehicle", "read"),
			h.GetById,
		)
		vehicles.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "vehicle", "write"),
			h.Create,
		)
		vehicles.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "vehicle", "write"),
			h.Update,
		)
		vehicles.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "vehicle", "write"),
			h.Delete,
		)
	}
}
