package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/repository"
)

func newTimelineHandler(t *testing.T) (*TimelineHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTimelineHandler(repository.NewTimelineRepo(db), nil), mock
}

func timelineRows() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "year", "title_en", "title_bg", "title_ru",
		"description_en", "description_bg", "description_ru",
		"icon", "color", "image_url", "is_featured", "display_order",
		"created_at", "updated_at",
	}).AddRow(1, 1995, "Founded", "Основана", "",
		"The company was founded.", "Компанията е основана.", "",
		"", "", "", false, 0, now, now)
}

func TestTimelineListDecadeFilter(t *testing.T) {
	h, mock := newTimelineHandler(t)

	// ?decade=1990 expands to year >= 1990 AND year <= 1999.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timeline_entries WHERE year >= ? AND year <= ?")).
		WithArgs(1990, 1999).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM timeline_entries WHERE year >= \\? AND year <= \\?").
		WithArgs(1990, 1999, 20, 0).
		WillReturnRows(timelineRows())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/timeline?decade=1990", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimelineListLocaleProjection(t *testing.T) {
	h, mock := newTimelineHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM timeline_entries")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM timeline_entries").
		WithArgs(20, 0).
		WillReturnRows(timelineRows())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/timeline?locale=bg", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Основана", body.Data[0].Title)
}

func TestTimelineListDegradesOnDBError(t *testing.T) {
	h, mock := newTimelineHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnError(assert.AnError)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/timeline", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.List(e.NewContext(req, rec)))

	// Public reads fail soft: 200 with success=false and no data.
	assert.Equal(t, http.StatusOK, rec.Code)
	var body listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Zero(t, body.Count)
}

func TestValidateTimelineEntry(t *testing.T) {
	e := model.TimelineEntry{
		Year:        1995,
		Title:       model.LocalizedText{En: "Founded", Bg: "Основана"},
		Description: model.LocalizedText{En: "d", Bg: "d"},
	}
	assert.Empty(t, validateTimelineEntry(&e))

	e.Year = 1200
	assert.Contains(t, validateTimelineEntry(&e), "year must be a plausible calendar year")
}
