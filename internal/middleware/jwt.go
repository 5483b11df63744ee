package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/bsgholding/cms-backend/internal/repository"
	"github.com/bsgholding/cms-backend/internal/utils"
)

// Context keys under which JWTAuth stores the authenticated subject.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxUser   = "user"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// loads the subject's current user record and injects both into the request
// context. Loading the record (rather than trusting the token's role claim
// alone) means a demoted or deleted account loses access the moment the
// database row changes, not when the token expires.
//
// Per-request flow: missing bearer -> 401; bad signature or expired -> 401;
// subject row gone -> 401; otherwise the user row, ID and current role are
// stored under CtxUser/CtxUserID/CtxRole and the chain continues.
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, _, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid token"})
			}

			u, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				// Absent subject and database failure both deny access; the
				// distinction is not leaked to the caller.
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid token"})
			}

			c.Set(CtxUserID, u.ID)
			c.Set(CtxRole, u.Role)
			c.Set(CtxUser, u)
			return next(c)
		}
	}
}
