package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/model"
)

func TestHasPermission(t *testing.T) {
	for _, p := range []Permission{PermManageContent, PermManageMedia, PermManageUsers} {
		assert.True(t, HasPermission(model.RoleAdmin, p))
		assert.False(t, HasPermission(model.RoleEditor, p))
		assert.False(t, HasPermission("", p))
		assert.False(t, HasPermission("superuser", p))
	}
}

func callWithRole(t *testing.T, role any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}

	h := RequirePermission(PermManageContent)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequirePermission(t *testing.T) {
	assert.Equal(t, http.StatusOK, callWithRole(t, model.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, callWithRole(t, model.RoleEditor).Code)
	assert.Equal(t, http.StatusForbidden, callWithRole(t, nil).Code)
	assert.Equal(t, http.StatusForbidden, callWithRole(t, 123).Code)
}
