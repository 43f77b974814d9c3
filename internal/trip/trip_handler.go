package trip

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/esnupy/lafa/internal/shared/apperror"
	"github.com/esnupy/lafa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cached import responses outlive the operator's retry window, not much
// more.
const importCacheTTL = 10 * time.Minute

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("trip.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trip.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("trip request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.HTTPStatus),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.HTTPStatus, httpErr.Code, httpErr.Message, nil)
}

func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Import(c.Request.Context(), req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEarnings(c *gin.Context) {
	weekStart := c.Query("week")
	resp, err := h.service.GetEarningsByWeek(c.Request.Context(), weekStart)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteEarnings(c *gin.Context) {
	driverID := c.Param("driverId")
	weekStart := c.Param("week")
	if err := h.service.DeleteEarnings(c.Request.Context(), driverID, weekStart); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// cacheIdempotentResponse stores the successful import under the
// middleware's cache key so a client retry replays it, and drops the
// in-flight lock.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp ImportResponse) {
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" || h.rdb == nil {
		return
	}
	if body, err := json.Marshal(resp); err == nil {
		h.rdb.Set(c.Request.Context(), cacheKey, body, importCacheTTL)
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

// releaseIdempotencyLock frees the lock on failure so the client can
// retry immediately with the same key.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	if h.rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}
