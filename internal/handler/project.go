package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
)

// ProjectHandler exposes the project CRUD surface.
type ProjectHandler struct {
	Repo   *repository.ProjectRepo
	Events *queue_publisher.Publisher
}

func NewProjectHandler(repo *repository.ProjectRepo, events *queue_publisher.Publisher) *ProjectHandler {
	return &ProjectHandler{Repo: repo, Events: events}
}

// projectReq is the create/update payload. Every field is optional so the
// same type serves partial updates; create validates the required ones.
type projectReq struct {
	Title                *model.LocalizedText  `json:"title"`
	Description          *model.LocalizedText  `json:"description"`
	ShortDescription     *model.LocalizedText  `json:"shortDescription"`
	Category             *model.LocalizedText  `json:"category"`
	Status               *string               `json:"status"`
	CompletionPercentage *int                  `json:"completionPercentage"`
	Featured             *bool                 `json:"isFeatured"`
	Images               *[]model.ProjectImage `json:"images"`
	Location             *projectLocationReq   `json:"location"`
	Spec                 *model.ProjectSpec    `json:"specification"`
	Phases               *[]model.ProjectPhase `json:"timeline"`
	Budget               *model.ProjectBudget  `json:"budget"`
}

type projectLocationReq struct {
	Address *model.LocalizedText `json:"address"`
	Lat     *float64             `json:"lat"`
	Lng     *float64             `json:"lng"`
}

// apply merges the provided fields into p.
func (req *projectReq) apply(p *model.Project) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ShortDescription != nil {
		p.ShortDescription = *req.ShortDescription
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.CompletionPercentage != nil {
		p.CompletionPercentage = *req.CompletionPercentage
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Location != nil {
		if req.Location.Address != nil {
			p.Location.Address = *req.Location.Address
		}
		if req.Location.Lat != nil {
			p.Location.Lat = *req.Location.Lat
		}
		if req.Location.Lng != nil {
			p.Location.Lng = *req.Location.Lng
		}
	}
	if req.Spec != nil {
		p.Spec = req.Spec
	}
	if req.Phases != nil {
		p.Phases = *req.Phases
	}
	if req.Budget != nil {
		p.Budget = req.Budget
	}
}

// validateProject checks the merged record before it is written.
func validateProject(p *model.Project, forCreate bool) []string {
	var msgs []string
	msgs = append(msgs, p.Title.Validate("title")...)
	msgs = append(msgs, p.Description.Validate("description")...)
	msgs = append(msgs, p.ShortDescription.Validate("shortDescription")...)
	msgs = append(msgs, p.Category.Validate("category")...)
	if !model.ValidProjectStatus(p.Status) {
		msgs = append(msgs, "status must be one of planned, in-progress, complete")
	}
	if p.CompletionPercentage < 0 || p.CompletionPercentage > 100 {
		msgs = append(msgs, "completionPercentage must be between 0 and 100")
	}
	if forCreate && p.Location.Lat == 0 && p.Location.Lng == 0 {
		msgs = append(msgs, "location.lat and location.lng are required")
	}
	featured := 0
	for _, img := range p.Images {
		if img.URL == "" {
			msgs = append(msgs, "images.url is required")
		}
		if img.Featured {
			featured++
		}
	}
	if featured > 1 {
		msgs = append(msgs, "at most one image may be featured")
	}
	return msgs
}

// List handles GET /api/projects. Public; persistence failures degrade to
// an empty 200 so the site keeps rendering.
func (h *ProjectHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 10)
	f := repository.ProjectFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Featured: boolQuery(c, "featured"),
		Page:     page,
		Limit:    limit,
	}
	items, total, err := h.Repo.List(c.Request().Context(), f)
	if err != nil {
		c.Logger().Errorf("list projects: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, page, limit)
}

// Featured handles GET /api/projects/featured.
func (h *ProjectHandler) Featured(c echo.Context) error {
	_, limit := pageParams(c, 5)
	t := true
	items, total, err := h.Repo.List(c.Request().Context(), repository.ProjectFilter{
		Featured: &t, Page: 1, Limit: limit,
	})
	if err != nil {
		c.Logger().Errorf("list featured projects: %v", err)
		return listDegraded(c)
	}
	return listOK(c, items, len(items), total, 1, limit)
}

// Get handles GET /api/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

// Create handles POST /api/projects (admin).
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p := model.Project{Status: model.ProjectPlanned, Images: []model.ProjectImage{}}
	req.apply(&p)
	if msgs := validateProject(&p, true); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	id, err := h.Repo.Create(c.Request().Context(), &p)
	if err != nil {
		return serverError(c, "could not create project")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load project failed")
	}
	publishChange(h.Events, c, "projects", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/projects/:id (admin). Partial: omitted fields
// keep their stored values, validators re-run on the merged record.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req projectReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "database error")
	}
	req.apply(&p)
	if msgs := validateProject(&p, false); len(msgs) > 0 {
		return validationError(c, msgs)
	}
	if err := h.Repo.Update(c.Request().Context(), &p); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load project failed")
	}
	publishChange(h.Events, c, "projects", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

// Delete handles DELETE /api/projects/:id (admin).
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "delete failed")
	}
	publishChange(h.Events, c, "projects", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}

// ToggleFeatured handles PATCH /api/projects/:id/featured (admin).
func (h *ProjectHandler) ToggleFeatured(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := h.Repo.ToggleFeatured(c.Request().Context(), id); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "toggle failed")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load project failed")
	}
	publishChange(h.Events, c, "projects", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}

type projectStatusReq struct {
	Status               string `json:"status"`
	CompletionPercentage *int   `json:"completionPercentage"`
}

// SetStatus handles PATCH /api/projects/:id/status (admin).
func (h *ProjectHandler) SetStatus(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req projectStatusReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if !model.ValidProjectStatus(req.Status) {
		return badRequest(c, "status must be one of planned, in-progress, complete")
	}
	if req.CompletionPercentage != nil &&
		(*req.CompletionPercentage < 0 || *req.CompletionPercentage > 100) {
		return badRequest(c, "completionPercentage must be between 0 and 100")
	}
	if err := h.Repo.SetStatus(c.Request().Context(), id, req.Status, req.CompletionPercentage); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "project not found")
		}
		return serverError(c, "update failed")
	}
	p, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load project failed")
	}
	publishChange(h.Events, c, "projects", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
}
