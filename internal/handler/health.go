package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler reports process liveness plus the state of each backing
// service. The database is the only hard dependency; redis and the queue
// are reported but never fail the check.
type HealthHandler struct {
	DB       *sql.DB
	Redis    *redis.Client
	QueueURL string
}

func NewHealthHandler(db *sql.DB, rdb *redis.Client, queueURL string) *HealthHandler {
	return &HealthHandler{DB: db, Redis: rdb, QueueURL: queueURL}
}

// Check handles GET /api/healthcheck.
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbOK := h.DB.PingContext(ctx) == nil

	redisOK := false
	if h.Redis != nil {
		redisOK = h.Redis.Ping(ctx).Err() == nil
	}

	status := http.StatusOK
	state := "ok"
	if !dbOK {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	return c.JSON(status, echo.Map{
		"success":  dbOK,
		"status":   state,
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": dbOK,
		"redis":    redisOK,
		"queue":    h.QueueURL != "",
	})
}
