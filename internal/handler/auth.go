package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/bsgholding/cms-backend/internal/config"     // app configuration
	"github.com/bsgholding/cms-backend/internal/middleware" // context keys
	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/repository" // DB repositories
	"github.com/bsgholding/cms-backend/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"` // admin | editor, defaults to admin
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateMeReq struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authUser struct {
	ID          uint64    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	Token       string    `json:"token"`
	Expires     time.Time `json:"expires"`
}

// Register: create user and return a bearer token immediately. The panel is
// provisioned by its first registration, hence the admin default role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return badRequest(c, "email, password and displayName are required")
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != model.RoleAdmin && role != model.RoleEditor {
		role = model.RoleAdmin
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.DisplayName, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return badRequest(c, "email already exists")
		}
		return serverError(c, "create user failed")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.TokenTTLDays)
	if err != nil {
		return serverError(c, "issue token failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": authUser{
		ID: uid, Email: req.Email, DisplayName: req.DisplayName, Role: role,
		Token: access.Token, Expires: access.Exp,
	}})
}

// Login: verify credentials, stamp last login and return a fresh token.
// Wrong password and unknown email are indistinguishable to the caller.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
		}
		return serverError(c, "query failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLDays)
	if err != nil {
		return serverError(c, "issue token failed")
	}
	if err := h.Users.TouchLogin(ctx, u.ID); err != nil {
		// Last-login is bookkeeping; a failed stamp must not fail the login.
		c.Logger().Warnf("touch login for user %d: %v", u.ID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": authUser{
		ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role,
		Token: access.Token, Expires: access.Exp,
	}})
}

// Me returns the authenticated user's record (already loaded by JWTAuth).
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := c.Get(middleware.CtxUser).(model.User)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": u})
}

// UpdateMe changes the profile fields of the authenticated user.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req updateMeReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.DisplayName == "" {
		return badRequest(c, "email and displayName are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, req.Email, req.DisplayName); err != nil {
		if err == repository.ErrEmailExists {
			return badRequest(c, "email already exists")
		}
		if err == repository.ErrNotFound {
			return notFound(c, "user not found")
		}
		return serverError(c, "update failed")
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return serverError(c, "load user failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": u})
}

// ChangePassword verifies the current password before storing a new hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "currentPassword and newPassword are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return serverError(c, "load user failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "invalid credentials"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return serverError(c, "update password failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}
