package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/queue"
	"github.com/bsgholding/cms-backend/internal/repository"
	queue_publisher "github.com/bsgholding/cms-backend/internal/service"
	"github.com/bsgholding/cms-backend/internal/storage"
)

// MediaHandler exposes the media library: multipart upload, metadata
// editing and guarded deletion. The whole surface is admin-only.
type MediaHandler struct {
	Repo   *repository.MediaRepo
	Store  *storage.LocalStore
	Events *queue_publisher.Publisher
}

func NewMediaHandler(repo *repository.MediaRepo, store *storage.LocalStore, events *queue_publisher.Publisher) *MediaHandler {
	return &MediaHandler{Repo: repo, Store: store, Events: events}
}

// The display name is a plain string; alt text is localized.
type mediaMetaReq struct {
	Name *string              `json:"name"`
	Alt  *model.LocalizedText `json:"alt"`
	Tags *[]string            `json:"tags"`
}

// List handles GET /api/media (admin).
func (h *MediaHandler) List(c echo.Context) error {
	page, limit := pageParams(c, 20)
	items, total, err := h.Repo.List(c.Request().Context(), repository.MediaFilter{
		Type:  c.QueryParam("type"),
		Tag:   c.QueryParam("tag"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return serverError(c, "database error")
	}
	return listOK(c, items, len(items), total, page, limit)
}

// Get handles GET /api/media/:id (admin).
func (h *MediaHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "media not found")
		}
		return serverError(c, "database error")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": m})
}

// Upload handles POST /api/media/upload (admin, multipart). The file lands
// in a type-scoped directory under a random name; the returned record holds
// the relative URL the frontend embeds.
func (h *MediaHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	up, err := h.Store.Save(fh)
	if err != nil {
		switch err {
		case storage.ErrTooLarge:
			return badRequest(c, "file exceeds the upload size limit")
		case storage.ErrUnsupportedType:
			return badRequest(c, "unsupported file type")
		}
		return serverError(c, "store file failed")
	}

	uploaderID, _ := getUserID(c)
	m := model.Media{
		Name:       up.Name,
		URL:        up.URL,
		Type:       up.Type,
		MimeType:   up.MimeType,
		Size:       up.Size,
		Alt:        model.LocalizedText{En: c.FormValue("altEn"), Bg: c.FormValue("altBg"), Ru: c.FormValue("altRu")},
		UploaderID: uploaderID,
	}
	id, err := h.Repo.Create(c.Request().Context(), &m)
	if err != nil {
		// The record is the source of truth; without it the stored file is
		// an orphan, so clean it up before failing.
		if derr := h.Store.Delete(up.URL); derr != nil {
			c.Logger().Errorf("remove orphan upload %s: %v", up.URL, derr)
		}
		return serverError(c, "could not create media record")
	}
	created, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load media failed")
	}
	publishChange(h.Events, c, "media", id, queue.ActionCreated)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": created})
}

// Update handles PUT /api/media/:id (admin): metadata only, the stored
// file is immutable.
func (h *MediaHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req mediaMetaReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "media not found")
		}
		return serverError(c, "database error")
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Alt != nil {
		m.Alt = *req.Alt
	}
	if req.Tags != nil {
		m.Tags = *req.Tags
	}
	if m.Name == "" {
		return badRequest(c, "name is required")
	}
	if err := h.Repo.UpdateMeta(c.Request().Context(), &m); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "media not found")
		}
		return serverError(c, "update failed")
	}
	updated, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load media failed")
	}
	publishChange(h.Events, c, "media", id, queue.ActionUpdated)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": updated})
}

type mediaUsedReq struct {
	Used bool `json:"isUsed"`
}

// SetUsed handles PATCH /api/media/:id/used (admin): marks a record as
// referenced by page content, which blocks deletion.
func (h *MediaHandler) SetUsed(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	var req mediaUsedReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.Repo.SetUsed(c.Request().Context(), id, req.Used); err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "media not found")
		}
		return serverError(c, "update failed")
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return serverError(c, "load media failed")
	}
	publishChange(h.Events, c, "media", id, queue.ActionToggled)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": m})
}

// Delete handles DELETE /api/media/:id (admin). An in-use record is
// refused with 400 and left intact, file included. Once the record is
// gone the file removal is best-effort: a leftover file is logged and
// cleaned up out of band, the response still succeeds.
func (h *MediaHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	m, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrNotFound {
			return notFound(c, "media not found")
		}
		return serverError(c, "database error")
	}
	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		switch err {
		case repository.ErrMediaInUse:
			return badRequest(c, "media is in use and cannot be deleted")
		case repository.ErrNotFound:
			return notFound(c, "media not found")
		}
		return serverError(c, "delete failed")
	}
	if err := h.Store.Delete(m.URL); err != nil {
		c.Logger().Errorf("delete stored file %s: %v", m.URL, err)
	}
	publishChange(h.Events, c, "media", id, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{}})
}
