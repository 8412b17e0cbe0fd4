package rbac

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, middlewares ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(middlewares...)
	{
		group.POST("/enforce", handler.Enforce)
	}
}
