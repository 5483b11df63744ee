package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/bsgholding/cms-backend/internal/model"
)

// Permission names one guarded capability of the admin API. Routes declare
// the permission they need instead of listing role strings, so the policy
// below is the single place that decides what each role may do.
type Permission string

const (
	PermManageContent Permission = "content:manage" // projects, partners, clients, timeline, page sections
	PermManageMedia   Permission = "media:manage"   // upload, edit and delete media
	PermManageUsers   Permission = "users:manage"   // reserved for account administration
)

// HasPermission is the role policy. Admins hold every permission; editors
// currently hold none of the manage permissions and can only use the read
// surface, which is public anyway.
func HasPermission(role string, p Permission) bool {
	switch role {
	case model.RoleAdmin:
		return true
	default:
		return false
	}
}

// RequirePermission returns a middleware that enforces the given permission
// against the role placed in context by JWTAuth. A missing or disallowed
// role is rejected with 403 Forbidden.
func RequirePermission(p Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(string)
			if !ok || !HasPermission(role, p) {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "forbidden"})
			}
			return next(c)
		}
	}
}
