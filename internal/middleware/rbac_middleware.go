package middleware

import (
	"hris-leave/internal/rbac"
	"hris-leave/internal/shared/apperror"
	"hris-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Keys set on the gin context by the auth and RBAC middleware.
const (
	ContextUserID         = "user_id"
	ContextEmployeeID     = "employee_id"
	ContextRole           = "role"
	ContextCanDecideLeave = "can_decide_leave"
)

type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func abortWithError(c *gin.Context, err error) {
	response.FromError(c, err)
	c.Abort()
}

// RBACAuthorize rejects the request unless the caller's role holds
// resource:action.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextEmployeeID) == "" {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     c.GetString(ContextRole),
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !allowed {
			abortWithError(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RBACCapability records whether the caller's role holds resource:action
// under key and always lets the request through.
func RBACCapability(service RBACService, resource, action, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := false
		if role := c.GetString(ContextRole); role != "" {
			ok, err := service.Enforce(rbac.EnforceRequest{Role: role, Resource: resource, Action: action})
			if err != nil {
				abortWithError(c, err)
				return
			}
			allowed = ok
		}
		c.Set(key, allowed)
		c.Next()
	}
}
