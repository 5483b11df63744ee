package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/model"
)

func newMock(t *testing.T) (*ProjectRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProjectRepo(db), mock
}

func projectRow(id uint64, title string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id",
		"title_en", "title_bg", "title_ru",
		"description_en", "description_bg", "description_ru",
		"short_description_en", "short_description_bg", "short_description_ru",
		"category_en", "category_bg", "category_ru",
		"status", "completion_pct", "is_featured",
		"address_en", "address_bg", "address_ru", "lat", "lng",
		"spec_json", "timeline_json", "budget_json",
		"created_at", "updated_at",
	}).AddRow(id,
		title, title+" bg", "",
		"desc", "desc bg", "",
		"short", "short bg", "",
		"residential", "жилищни", "",
		model.ProjectInProgress, 40, true,
		"1 Main St", "ул. Главна 1", "", 42.69, 23.32,
		`{"area":"1200 m2"}`, nil, nil,
		now, now)
}

func TestProjectListPagination(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	// Page 3 with limit 10 translates to LIMIT 10 OFFSET 20.
	mock.ExpectQuery("SELECT .+ FROM projects WHERE 1=1 ORDER BY created_at DESC, id DESC LIMIT \\? OFFSET \\?").
		WithArgs(10, 20).
		WillReturnRows(projectRow(21, "Office Tower"))

	mock.ExpectQuery("SELECT project_id,.+ FROM project_images").
		WithArgs(uint64(21)).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "url", "alt_en", "alt_bg", "alt_ru", "is_featured", "position"}).
			AddRow(21, "/uploads/images/a.jpg", "front", "", "", true, 0))

	items, total, err := repo.List(context.Background(), ProjectFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Office Tower", items[0].Title.En)
	require.Len(t, items[0].Images, 1)
	assert.True(t, items[0].Images[0].Featured)
	require.NotNil(t, items[0].Spec)
	assert.Equal(t, "1200 m2", items[0].Spec.Area)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectListStatusFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM projects WHERE status = ?")).
		WithArgs(model.ProjectComplete).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	// An empty page skips the image query entirely.
	mock.ExpectQuery("SELECT .+ FROM projects WHERE status = \\?").
		WithArgs(model.ProjectComplete, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	items, total, err := repo.List(context.Background(), ProjectFilter{Status: model.ProjectComplete, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectToggleFeatured(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET is_featured = NOT is_featured WHERE id=?")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ToggleFeatured(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectToggleFeaturedMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET is_featured = NOT is_featured WHERE id=?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.ToggleFeatured(context.Background(), 404), ErrNotFound)
}

func TestProjectSetStatusKeepsPercentage(t *testing.T) {
	repo, mock := newMock(t)

	// A nil pct leaves completion_pct alone via COALESCE.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE projects SET status=?, completion_pct=COALESCE(?, completion_pct) WHERE id=?")).
		WithArgs(model.ProjectComplete, nil, uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), 9, model.ProjectComplete, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDeleteMissing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM projects WHERE id=?")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrNotFound)
}
