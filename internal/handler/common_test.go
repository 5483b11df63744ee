package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ctxWithQuery(query string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPageParams(t *testing.T) {
	c, _ := ctxWithQuery("page=2&limit=15")
	page, limit := pageParams(c, 10)
	assert.Equal(t, 2, page)
	assert.Equal(t, 15, limit)

	c, _ = ctxWithQuery("")
	page, limit = pageParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	c, _ = ctxWithQuery("page=-3&limit=9999")
	page, limit = pageParams(c, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}

func TestBoolQuery(t *testing.T) {
	c, _ := ctxWithQuery("featured=true")
	require.NotNil(t, boolQuery(c, "featured"))
	assert.True(t, *boolQuery(c, "featured"))

	c, _ = ctxWithQuery("featured=0")
	require.NotNil(t, boolQuery(c, "featured"))
	assert.False(t, *boolQuery(c, "featured"))

	c, _ = ctxWithQuery("")
	assert.Nil(t, boolQuery(c, "featured"))

	c, _ = ctxWithQuery("featured=banana")
	assert.Nil(t, boolQuery(c, "featured"))
}

func TestListOKEnvelope(t *testing.T) {
	c, rec := ctxWithQuery("")
	// 25 records at 10 per page round up to 3 pages.
	require.NoError(t, listOK(c, []string{"a", "b"}, 2, 25, 2, 10))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, int64(25), body.Total)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 2, body.CurrentPage)
}

func TestListDegraded(t *testing.T) {
	c, rec := ctxWithQuery("")
	require.NoError(t, listDegraded(c))

	// Degraded reads still answer 200 with an empty page; the frontend
	// renders an empty section instead of an error state.
	assert.Equal(t, http.StatusOK, rec.Code)
	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Zero(t, body.Count)

	// The degraded page carries no-store so the response cache never pins a
	// transient failure for a full TTL.
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
