package leavetype

import (
	"net/http"

	"hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leavetype.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		httpErr := response.FromError(c, err)
		h.logger.Warn("list leave types failed", zap.Int("status", httpErr.Status), zap.Error(err))
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := response.FromError(c, err)
		h.logger.Warn("get leave type failed", zap.Int("status", httpErr.Status), zap.Error(err))
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
