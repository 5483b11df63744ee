package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/bsgholding/cms-backend/internal/config"
	"github.com/bsgholding/cms-backend/internal/handler"
	"github.com/bsgholding/cms-backend/internal/middleware"
	"github.com/bsgholding/cms-backend/internal/repository"
)

// Handlers bundles every handler the API mounts. main builds it once and
// hands it over together with the shared middleware inputs.
type Handlers struct {
	Auth     *handler.AuthHandler
	Projects *handler.ProjectHandler
	Partners *handler.PartnerHandler
	Clients  *handler.ClientHandler
	Timeline *handler.TimelineHandler
	Content  *handler.ContentHandler
	Media    *handler.MediaHandler
	Health   *handler.HealthHandler
}

// Register mounts the whole /api surface: the public read endpoints, the
// auth endpoints and the protected admin endpoints. rdb may be nil, which
// disables the response cache and the login rate limiter.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, users *repository.UserRepo, h Handlers) {
	api := e.Group("/api")
	api.GET("/healthcheck", h.Health.Check)

	registerAuth(api, cfg, rdb, users, h.Auth)
	registerPublic(api, rdb, h)
	registerAdmin(api, cfg, users, h)

	// Uploaded files are served straight from disk under /uploads.
	e.Static("/uploads", cfg.UploadDir)
}

// registerAuth mounts registration, login and the authenticated profile
// endpoints. The credential endpoints sit behind the Redis token bucket so
// password guessing burns a per-IP budget.
func registerAuth(api *echo.Group, cfg config.Config, rdb *redis.Client, users *repository.UserRepo, a *handler.AuthHandler) {
	g := api.Group("/auth")
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := api.Group("/auth")
	me.Use(middleware.JWTAuth(cfg.JWTSecret, users))
	me.GET("/me", a.Me)
	me.PUT("/me", a.UpdateMe)
	me.PUT("/change-password", a.ChangePassword)
	// Older frontend builds call the nested path; keep it as an alias.
	me.PUT("/me/password", a.ChangePassword)
}

// registerPublic mounts the unauthenticated read endpoints the marketing
// frontend consumes. Responses are cached in Redis for a short TTL.
func registerPublic(api *echo.Group, rdb *redis.Client, h Handlers) {
	g := api.Group("")
	if rdb != nil {
		g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	g.GET("/projects", h.Projects.List)
	g.GET("/projects/featured", h.Projects.Featured)
	g.GET("/projects/:id", h.Projects.Get)

	g.GET("/partners", h.Partners.List)
	g.GET("/partners/featured", h.Partners.Featured)
	g.GET("/partners/:id", h.Partners.Get)

	g.GET("/clients", h.Clients.List)
	g.GET("/clients/featured", h.Clients.Featured)
	g.GET("/clients/:id", h.Clients.Get)

	g.GET("/timeline", h.Timeline.List)
	g.GET("/timeline/featured", h.Timeline.Featured)
	g.GET("/timeline/:id", h.Timeline.Get)

	g.GET("/content", h.Content.List)
	g.GET("/content/:id", h.Content.Get)
}

// registerAdmin mounts every write endpoint. All of them require a valid
// bearer token and the matching permission.
func registerAdmin(api *echo.Group, cfg config.Config, users *repository.UserRepo, h Handlers) {
	admin := api.Group("")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret, users))

	content := admin.Group("", middleware.RequirePermission(middleware.PermManageContent))

	content.POST("/projects", h.Projects.Create)
	content.PUT("/projects/:id", h.Projects.Update)
	content.DELETE("/projects/:id", h.Projects.Delete)
	content.PATCH("/projects/:id/featured", h.Projects.ToggleFeatured)
	content.PATCH("/projects/:id/status", h.Projects.SetStatus)

	content.POST("/partners", h.Partners.Create)
	content.PUT("/partners/:id", h.Partners.Update)
	content.DELETE("/partners/:id", h.Partners.Delete)
	content.PATCH("/partners/:id/featured", h.Partners.ToggleFeatured)

	content.POST("/clients", h.Clients.Create)
	content.PUT("/clients/:id", h.Clients.Update)
	content.DELETE("/clients/:id", h.Clients.Delete)
	content.PATCH("/clients/:id/featured", h.Clients.ToggleFeatured)

	content.POST("/timeline", h.Timeline.Create)
	content.PUT("/timeline/:id", h.Timeline.Update)
	content.DELETE("/timeline/:id", h.Timeline.Delete)
	content.PATCH("/timeline/:id/featured", h.Timeline.ToggleFeatured)

	content.POST("/content", h.Content.Create)
	content.PUT("/content/:id", h.Content.Update)
	content.DELETE("/content/:id", h.Content.Delete)
	content.PATCH("/content/:id/active", h.Content.ToggleActive)

	media := admin.Group("/media", middleware.RequirePermission(middleware.PermManageMedia))
	media.GET("", h.Media.List)
	media.GET("/:id", h.Media.Get)
	media.POST("/upload", h.Media.Upload)
	media.PUT("/:id", h.Media.Update)
	media.PATCH("/:id/used", h.Media.SetUsed)
	media.DELETE("/:id", h.Media.Delete)
}
