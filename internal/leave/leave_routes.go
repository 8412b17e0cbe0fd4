package leave

import (
	"hris-leave/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the lifecycle endpoints. r must already be behind
// authentication; capability resolves whether the caller may decide on leave.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	capability gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	leaves := r.Group("/leaves")
	leaves.Use(capability)
	{
		leaves.POST("", idempotency, handler.Create)
		leaves.GET("/pending", handler.GetPending)
		leaves.GET("/:id", handler.GetByID)
		leaves.POST("/:id/approve", idempotency, handler.Approve)
		leaves.POST("/:id/reject", idempotency, handler.Reject)
		leaves.POST("/:id/cancel", idempotency, handler.Cancel)
	}

	employees := r.Group("/employees/:employee_id")
	employees.Use(capability)
	{
		employees.GET("/leaves", handler.GetByEmployee)
		employees.GET("/leave-balances/annual", handler.GetAnnualLeaveCalculation)
		employees.GET("/leave-balances/:leave_type_id", handler.GetBalance)
	}
}

// DecideCapability is the capability middleware for leave decisions.
func DecideCapability(rbacService middleware.RBACService) gin.HandlerFunc {
	return middleware.RBACCapability(rbacService, "leave", "approve", middleware.ContextCanDecideLeave)
}
