package trip

import (
	"github.com/esnupy/lafa/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	trips := r.Group("/trips")
	trips.Use(middleware.AuthMiddleware())
	trips.Use(middleware.RequestContext())
	{
		trips.POST("/import",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "trips", "import"),
			middleware.Idempotency(rdb),
			h.Import,
		)
		trips.GET("/earnings",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "trips", "read"),
			h.GetEarnings,
		)
		trips.DELETE("/earnings/:driverId/:week",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "trips", "delete"),
			h.DeleteEarnings,
		)
	}
}
