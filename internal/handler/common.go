package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/middleware"
	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// listEnvelope is the standard wrapper of every list endpoint.
type listEnvelope struct {
	Success     bool  `json:"success"`
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        any   `json:"data"`
}

// listOK builds the success envelope for one page of results.
func listOK(c echo.Context, data any, count int, total int64, page, limit int) error {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return c.JSON(http.StatusOK, listEnvelope{
		Success:     true,
		Count:       count,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Data:        data,
	})
}

// listDegraded answers a failed public list read with HTTP 200 and empty
// data. The marketing frontend renders whatever arrives; an empty section
// beats an error page, so these endpoints trade the 5xx for a soft failure.
// Admin and single-entity endpoints do NOT use this.
func listDegraded(c echo.Context) error {
	// A degraded page must not outlive the outage in the response cache.
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, listEnvelope{
		Success:     false,
		Count:       0,
		Total:       0,
		TotalPages:  0,
		CurrentPage: 1,
		Data:        []any{},
	})
}

// pageParams reads ?page= and ?limit= with per-entity defaults and clamps
// them to sane values.
func pageParams(c echo.Context, defLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// boolQuery reads a tri-state boolean query parameter: nil when absent.
func boolQuery(c echo.Context, name string) *bool {
	v := strings.ToLower(c.QueryParam(name))
	switch v {
	case "true", "1":
		b := true
		return &b
	case "false", "0":
		b := false
		return &b
	}
	return nil
}

// intQuery reads an integer query parameter, zero when absent or malformed.
func intQuery(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}

// localeParam reads ?locale= and normalizes it (default en).
func localeParam(c echo.Context) string {
	return model.NormalizeLocale(c.QueryParam("locale"))
}

// idParam parses the :id path segment.
func idParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// getUserID extracts the authenticated user's ID placed in context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// badRequest and notFound are the shared error bodies of the admin surface.
func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": msg})
}

func serverError(c echo.Context, msg string) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": msg})
}

// publishChange fires a content-change event after a committed admin write.
// Failures are already logged by the publisher; the response must not care.
func publishChange(events *queue_publisher.Publisher, c echo.Context, resource string, id uint64, action string) {
	if events == nil {
		return
	}
	actor, _ := getUserID(c)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = events.ContentChanged(ctx, queue.ContentChangedEvent{
		Resource: resource,
		ID:       id,
		Action:   action,
		Actor:    actor,
	})
}

// validationError joins per-field messages into the 400 body.
func validationError(c echo.Context, msgs []string) error {
	return badRequest(c, strings.Join(msgs, ", "))
}
