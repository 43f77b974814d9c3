package chat

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
	l := zap.L().Named("chat.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("chat.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Ask(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.HTTPStatus, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Ask(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("chat request failed",
			zap.Int("status", httpErr.HTTPStatus),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.HTTPStatus, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
