package opsview

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
	"github.com/esnupy/lafa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("opsview.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("opsview.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("snapshot failed",
			zap.Int("status", httpErr.HTTPStatus),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.HTTPStatus, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, snap, nil)
}
