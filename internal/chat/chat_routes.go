package chat

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	chat.Use(middleware.RequestContext())
	{
		chat.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "chat", "use"),
			h.Ask,
		)
	}
}
