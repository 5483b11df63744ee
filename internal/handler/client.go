package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// ClientHandler exposes the client CRUD surface.
type ClientHandler struct {
	Repo   *repository.ClientRepo
	Events *queue_publisher.Publisher
}

func NewClientHandler(repo *repository.ClientRepo, events *queue_publisher.Publisher) *ClientHandler {
	return &ClientHandler{Repo: repo, Events: events}
}

type clientReq struct {
	Name        *model.LocalizedText `json:"name"`
	Description *model.LocalizedText `json:"description"`
	LogoURL     *string              `json:"logoUrl"`
	Website     *string              `json:"website"`
	Industry    *string              `json:"industry"`
	Featured    *bool                `json:"isFeatured"`
	Order       *int                 `json:"order"`
	Testimonial *model.Testimonial   `json:"testimonial"`
}

func (req *clientReq) apply(cl *model.Client) {
	if req.Name != nil {
		cl.Name = *req.Name
	}
	if req.Description != nil {
		cl.Description = *req.Description
	}
	if req.LogoURL != nil {
		cl.LogoURL = *req.LogoURL
	}
	if req.Website != nil {
		cl.Website = *req.Website
	}
	if req.Industry != nil {
		cl.Industry = *req.Industry
	}
	if req.Featured != nil {
		cl.Featured = *req.Featured
	}
	if req.Order != nil {
		cl.Order = *req.Order
	}
	if req.Testimonial != nil {
		cl.Testimonial = req.Testimonial
	}
}

func validateClient(cl *model.Client) []string {
	var msgs []string
	msgs = append(msgs, cl.Name.Validate("name")...)
	msgs = append(msgs, cl.Description.Validate("description")...)
	if cl.LogoURL == "" {
		msgs = append(msgs, "logoUrl is required")
	}
	if cl.Testimonial != nil {
		msgs = append(msgs, cl.Testimonial.Text.Validate("testimonial.text")...)
		if cl.Testimonial.Author == "" {
			msgs = append(msgs, "testimonial.author is required")
		}
	}
	return msgs
}

// List handles GET /api/clients. Public; failures degrade to an empty 200.
func (h *ClientHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20)
	items, total, err := h.Repo.List(c.Request().Context(), repository.ClientFilter{
		Industry: c.QueryParam("industry"),
		Featured: boolQuery(c, "featured"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.Logger().Errorf("list clients: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, page, limit)
}

// Featured handles GET /api/clients/featured.
func (h *ClientHandler) Featured(c echo.Context) error {
	_, limit := pageParams(c, 5)
	t := true
	items, total, err := h.Repo.List(c.Request().Context(), repository.ClientFilter{
		Featured: &t, Page: 1, Limit: limit,
	})
	if err != nil {
		c.Logger().Errorf("list featured clients: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, 1, limit)
}

// Get handles GET /api/clients/:id.
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	cl, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "client not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cl})
}

// Create handles POST /api/clients (admin).
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	var cl model.Client
	req.apply(&cl)
	if msgs := validateClient(&cl); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	id, err := h.Repo.Create(c.Request().Context(), &cl)
	if err != nil {
		return serverError(c, "could not create client")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load client failed")
	}
	publishChange(h.Events, c, "clients", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/clients/:id (admin).
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	cl, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "client not found")
		}
		return serverError(c, "database error")
	}
	req.apply(&cl)
	if msgs := validateClient(&cl); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	if err := h.Repo.Update(c.Request().Context(), &cl); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "client not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load client failed")
	}
	publishChange(h.Events, c, "clients", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/clients/:id (admin).
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "client not found")
		}
		return serverError(c, "delete failed")
	}
	publishChange(h.Events, c, "clients", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}

// ToggleFeatured handles PATCH /api/clients/:id/featured (admin).
func (h *ClientHandler) ToggleFeatured(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.ToggleFeatured(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "client not found")
		}
		return serverError(c, "toggle failed")
	}
	cl, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load client failed")
	}
	publishChange(h.Events, c, "clients", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cl})
}
