package router

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/config"
	"github.com/bsgholding/cms-backend/internal/handler"
	"github.com/bsgholding/cms-backend/internal/repository"
	"github.com/bsgholding/cms-backend/internal/storage"
)

func registerTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTLDays: 1, UploadDir: t.TempDir()}
	users := repository.NewUserRepo(db)
	h := Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Projects: handler.NewProjectHandler(repository.NewProjectRepo(db), nil),
		Partners: handler.NewPartnerHandler(repository.NewPartnerRepo(db), nil),
		Clients:  handler.NewClientHandler(repository.NewClientRepo(db), nil),
		Timeline: handler.NewTimelineHandler(repository.NewTimelineRepo(db), nil),
		Content:  handler.NewContentHandler(repository.NewPageContentRepo(db), nil),
		Media:    handler.NewMediaHandler(repository.NewMediaRepo(db), storage.NewLocalStore(t.TempDir(), 1<<20), nil),
		Health:   handler.NewHealthHandler(db, nil, ""),
	}

	e := echo.New()
	Register(e, cfg, nil, users, h)
	return e
}

func TestRegisteredRoutes(t *testing.T) {
	e := registerTestRouter(t)

	mounted := map[string]bool{}
	for _, r := range e.Routes() {
		mounted[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/me",
		"PUT /api/auth/me",
		http.MethodPut + " /api/auth/change-password",
		// Alias kept for older frontend builds.
		http.MethodPut + " /api/auth/me/password",
		"GET /api/healthcheck",
		"GET /api/projects",
		"GET /api/projects/featured",
		"PATCH /api/projects/:id/status",
		"PATCH /api/timeline/:id/featured",
		"PATCH /api/content/:id/active",
		"POST /api/media/upload",
		"DELETE /api/media/:id",
	} {
		assert.True(t, mounted[want], "route not mounted: %s", want)
	}
}
