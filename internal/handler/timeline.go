package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// TimelineHandler exposes the company-history CRUD surface.
type TimelineHandler struct {
	Repo   *repository.TimelineRepo
	Events *queue_publisher.Publisher
}

func NewTimelineHandler(repo *repository.TimelineRepo, events *queue_publisher.Publisher) *TimelineHandler {
	return &TimelineHandler{Repo: repo, Events: events}
}

type timelineReq struct {
	Year        *int                 `json:"year"`
	Title       *model.LocalizedText `json:"title"`
	Description *model.LocalizedText `json:"description"`
	Icon        *string              `json:"icon"`
	Color       *string              `json:"color"`
	ImageURL    *string              `json:"imageUrl"`
	Featured    *bool                `json:"isFeatured"`
	Order       *int                 `json:"order"`
}

func (req *timelineReq) apply(e *model.TimelineEntry) {
	if req.Year != nil {
		e.Year = *req.Year
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Icon != nil {
		e.Icon = *req.Icon
	}
	if req.Color != nil {
		e.Color = *req.Color
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	if req.Featured != nil {
		e.Featured = *req.Featured
	}
	if req.Order != nil {
		e.Order = *req.Order
	}
}

func validateTimelineEntry(e *model.TimelineEntry) []string {
	var msgs []string
	if e.Year < 1800 || e.Year > 2200 {
		msgs = append(msgs, "year must be a plausible calendar year")
	}
	msgs = append(msgs, e.Title.Validate("title")...)
	msgs = append(msgs, e.Description.Validate("description")...)
	return msgs
}

// List handles GET /api/timeline. Public; sorted ascending by year, with
// an optional decade filter (?yearFrom=&yearTo= or ?decade=1990) and
// optional ?locale= projection. Failures degrade to an empty 200.
func (h *TimelineHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20)
	f := repository.TimelineFilter{
		Featured: boolQuery(c, "featured"),
		YearFrom: intQuery(c, "yearFrom"),
		YearTo:   intQuery(c, "yearTo"),
		Page:     page,
		Limit:    limit,
	}
	if decade := intQuery(c, "decade"); decade > 0 {
		f.YearFrom = decade
		f.YearTo = decade + 9
	}
	items, total, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("list timeline: %v", err)
		return listDegraded(c)
	}
	if c.QueryParam("locale") != "" {
		locale := localeParam(c)
		out := make([]model.LocalizedTimelineEntry, 0, len(items))
		for _, e := range items {
			out = append(out, e.Localize(locale))
		}
		return listOK(c, out, len(out), total, page, limit)
	}
	return listOK(c, items, len(items), total, page, limit)
}

// Featured handles GET /api/timeline/featured.
func (h *TimelineHandler) Featured(c echo.Context) error {
	_, limit := pageParams(c, 5)
	t := true
	items, total, err := h.Repo.List(c.Request().Context(), repository.TimelineFilter{
		Featured: &t, Page: 1, Limit: limit,
	})
	if err != nil {
		c.Logger().Errorf("list featured timeline: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, 1, limit)
}

// Get handles GET /api/timeline/:id.
func (h *TimelineHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	e, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "timeline entry not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": e})
}

// Create handles POST /api/timeline (admin).
func (h *TimelineHandler) Create(c echo.Context) error {
	var req timelineReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var e model.TimelineEntry
	req.apply(&e)
	if msgs := validateTimelineEntry(&e); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	id, err := h.Repo.Create(c.Request().Context(), &e)
	if err != nil {
		return serverError(c, "could not create timeline entry")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load timeline entry failed")
	}
	publishChange(h.Events, c, "timeline", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/timeline/:id (admin).
func (h *TimelineHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req timelineReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	e, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "timeline entry not found")
		}
		return serverError(c, "database error")
	}
	req.apply(&e)
	if msgs := validateTimelineEntry(&e); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	if err := h.Repo.Update(c.Request().Context(), &e); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "timeline entry not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load timeline entry failed")
	}
	publishChange(h.Events, c, "timeline", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/timeline/:id (admin).
func (h *TimelineHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "timeline entry not found")
		}
		return serverError(c, "delete failed")
	}
	publishChange(h.Events, c, "timeline", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}

// ToggleFeatured handles PATCH /api/timeline/:id/featured (admin).
func (h *TimelineHandler) ToggleFeatured(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.ToggleFeatured(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "timeline entry not found")
		}
		return serverError(c, "toggle failed")
	}
	e, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load timeline entry failed")
	}
	publishChange(h.Events, c, "timeline", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": e})
}
