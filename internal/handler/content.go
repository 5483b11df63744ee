package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// ContentHandler exposes the page-content CRUD surface. Public reads serve
// the frontend's section blocks; admin writes edit them.
type ContentHandler struct {
	Repo   *repository.PageContentRepo
	Events *queue_publisher.Publisher
}

func NewContentHandler(repo *repository.PageContentRepo, events *queue_publisher.Publisher) *ContentHandler {
	return &ContentHandler{Repo: repo, Events: events}
}

type contentReq struct {
	Page    *string                `json:"page"`
	Section *string                `json:"section"`
	Content *model.ContentBlock    `json:"content"`
	Media   *[]model.MediaRef      `json:"media"`
	Display *model.DisplaySettings `json:"displaySettings"`
	Active  *bool                  `json:"isActive"`
}

func (req *contentReq) apply(p *model.PageContent) {
	if req.Page != nil {
		p.Page = strings.TrimSpace(*req.Page)
	}
	if req.Section != nil {
		p.Section = strings.TrimSpace(*req.Section)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Media != nil {
		p.Media = *req.Media
	}
	if req.Display != nil {
		p.Display = *req.Display
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
}

func validatePageContent(p *model.PageContent) []string {
	var msgs []string
	if !model.ValidContentPage(p.Page) {
		msgs = append(msgs, "page must be one of "+strings.Join(model.ContentPages, ", "))
	}
	if p.Section == "" {
		msgs = append(msgs, "section is required")
	}
	msgs = append(msgs, p.Content.Title.Validate("content.title")...)
	return msgs
}

// List handles GET /api/content. Public readers filter by ?page= and get
// only active sections by default; the admin panel passes ?all=true to see
// hidden ones too. ?locale= flattens the localized blocks. Unlike the
// other public lists, a persistence failure here surfaces as a 500: a page
// without its content blocks is broken anyway.
func (h *ContentHandler) List(c echo.Context) error {
	pageNum, limit := pageParams(c, 20)
	f := repository.PageContentFilter{
		// ?page= is taken by pagination, so the page identifier rides
		// under ?pageId=.
		Page:    c.QueryParam("pageId"),
		PageNum: pageNum,
		Limit:   limit,
	}
	if all := boolQuery(c, "all"); all == nil || !*all {
		t := true
		f.ActiveOnly = &t
	}
	items, total, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("list content: %v", err)
		return serverError(c, "database error")
	}
	if c.QueryParam("locale") != "" {
		locale := localeParam(c)
		out := make([]model.LocalizedPageContent, 0, len(items))
		for _, p := range items {
			out = append(out, p.Localize(locale))
		}
		return listOK(c, out, len(out), total, pageNum, limit)
	}
	return listOK(c, items, len(items), total, pageNum, limit)
}

// Get handles GET /api/content/:id.
func (h *ContentHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "content section not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// Create handles POST /api/content (admin).
func (h *ContentHandler) Create(c echo.Context) error {
	var req contentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p := model.PageContent{Active: true}
	req.apply(&p)
	if msgs := validatePageContent(&p); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	id, err := h.Repo.Create(c.Request().Context(), &p)
	if err != nil {
		if err == repository.ErrDuplicateSection {
			return badRequest(c, "page section already exists")
		}
		return serverError(c, "could not create content section")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load content section failed")
	}
	publishChange(h.Events, c, "content", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/content/:id (admin).
func (h *ContentHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req contentReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "content section not found")
		}
		return serverError(c, "database error")
	}
	req.apply(&p)
	if msgs := validatePageContent(&p); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	if err := h.Repo.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrDuplicateSection {
			return badRequest(c, "page section already exists")
		}
		if err == repository.ErrNotFound {
			return notFound(c, "content section not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load content section failed")
	}
	publishChange(h.Events, c, "content", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/content/:id (admin).
func (h *ContentHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "content section not found")
		}
		return serverError(c, "delete failed")
	}
	publishChange(h.Events, c, "content", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}

// ToggleActive handles PATCH /api/content/:id/active (admin).
func (h *ContentHandler) ToggleActive(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.ToggleActive(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "content section not found")
		}
		return serverError(c, "toggle failed")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load content section failed")
	}
	publishChange(h.Events, c, "content", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}
