package leave

import (
	"net/http"
	"strconv"
	"time"

	leaveerrors "hris-leave/internal/leave/errors"
	"hris-leave/internal/middleware"
	"hris-leave/internal/shared/apperror"
	"hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActor(c *gin.Context) Actor {
	return Actor{
		ID:        c.GetString(middleware.ContextEmployeeID),
		CanDecide: c.GetBool(middleware.ContextCanDecideLeave),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("leave request failed", append(fields, zap.Error(err))...)
		return
	}
	h.logger.Warn("leave request failed", fields...)
}

// parseYear reads the year query parameter, falling back to the current
// year when fallback is set.
func parseYear(c *gin.Context, fallback bool) (*int, error) {
	raw := c.Query("year")
	if raw == "" {
		if !fallback {
			return nil, nil
		}
		y := time.Now().UTC().Year()
		return &y, nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return nil, leaveerrors.ErrInvalidYear
	}
	return &y, nil
}

func (h *Handler) Create(c *gin.Context) {
	actor := getActor(c)
	h.logger.Debug("http create leave", zap.String("actor_id", actor.ID))

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPending(c *gin.Context) {
	resp, err := h.service.GetPending(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	year, err := parseYear(c, false)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employee_id"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http reject leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), getActor(c), c.Param("id"), req.RejectionReason)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), getActor(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAnnualLeaveCalculation(c *gin.Context) {
	year, err := parseYear(c, true)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetAnnualLeaveCalculation(c.Request.Context(), c.Param("employee_id"), *year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetBalance(c *gin.Context) {
	year, err := parseYear(c, true)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetBalance(c.Request.Context(), c.Param("employee_id"), c.Param("leave_type_id"), *year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if resp == nil {
		h.writeServiceError(c, leaveerrors.ErrBalanceNotFound)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
