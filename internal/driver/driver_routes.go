package driver

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthMiddleware())
	drivers.Use(middleware.RequestContext())
	{
		drivers.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "driver", "read"),
			h.GetAll,
		)
		drivers.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "driver", "read"),
			h.GetById,
		)
		drivers.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "driver", "write"),
			h.Create,
		)
		drivers.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "driver", "write"),
			h.Update,
		)
		drivers.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "driver", "write"),
			h.Delete,
		)
	}
}
