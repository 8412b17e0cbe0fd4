package leavetype

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	types := r.Group("/leave-types")
	{
		types.GET("", h.GetAll)
		types.GET("/:id", h.GetByID)
	}
}
