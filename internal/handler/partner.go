package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// PartnerHandler exposes the partner CRUD surface.
type PartnerHandler struct {
	Repo   *repository.PartnerRepo
	Events *queue_publisher.Publisher
}

func NewPartnerHandler(repo *repository.PartnerRepo, events *queue_publisher.Publisher) *PartnerHandler {
	return &PartnerHandler{Repo: repo, Events: events}
}

type partnerReq struct {
	Name        *model.LocalizedText `json:"name"`
	Description *model.LocalizedText `json:"description"`
	LogoURL     *string              `json:"logoUrl"`
	Website     *string              `json:"website"`
	Category    *string              `json:"category"`
	Featured    *bool                `json:"isFeatured"`
	Order       *int                 `json:"order"`
}

func (req *partnerReq) apply(p *model.Partner) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.LogoURL != nil {
		p.LogoURL = *req.LogoURL
	}
	if req.Website != nil {
		p.Website = *req.Website
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
}

func validatePartner(p *model.Partner) []string {
	var msgs []string
	msgs = append(msgs, p.Name.Validate("name")...)
	msgs = append(msgs, p.Description.Validate("description")...)
	if p.LogoURL == "" {
		msgs = append(msgs, "logoUrl is required")
	}
	return msgs
}

// List handles GET /api/partners. Public; failures degrade to an empty 200.
func (h *PartnerHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20)
	items, total, err := h.Repo.List(c.Request().Context(), repository.PartnerFilter{
		Category: c.QueryParam("category"),
		Featured: boolQuery(c, "featured"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.Logger().Errorf("list partners: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, page, limit)
}

// Featured handles GET /api/partners/featured.
func (h *PartnerHandler) Featured(c echo.Context) error {
	_, limit := pageParams(c, 5)
	t := true
	items, total, err := h.Repo.List(c.Request().Context(), repository.PartnerFilter{
		Featured: &t, Page: 1, Limit: limit,
	})
	if err != nil {
		c.Logger().Errorf("list featured partners: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, 1, limit)
}

// Get handles GET /api/partners/:id.
func (h *PartnerHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "partner not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// Create handles POST /api/partners (admin).
func (h *PartnerHandler) Create(c echo.Context) error {
	var req partnerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var p model.Partner
	req.apply(&p)
	if msgs := validatePartner(&p); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	id, err := h.Repo.Create(c.Request().Context(), &p)
	if err != nil {
		return serverError(c, "could not create partner")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load partner failed")
	}
	publishChange(h.Events, c, "partners", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/partners/:id (admin).
func (h *PartnerHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req partnerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "partner not found")
		}
		return serverError(c, "database error")
	}
	req.apply(&p)
	if msgs := validatePartner(&p); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	if err := h.Repo.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "partner not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load partner failed")
	}
	publishChange(h.Events, c, "partners", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/partners/:id (admin).
func (h *PartnerHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "partner not found")
		}
		return serverError(c, "delete failed")
	}
	publishChange(h.Events, c, "partners", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}

// ToggleFeatured handles PATCH /api/partners/:id/featured (admin).
func (h *PartnerHandler) ToggleFeatured(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.ToggleFeatured(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "partner not found")
		}
		return serverError(c, "toggle failed")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load partner failed")
	}
	publishChange(h.Events, c, "partners", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}
