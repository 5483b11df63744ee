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

func newMediaMock(t *testing.T) (*MediaRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMediaRepo(db), mock
}

func mediaRow(id uint64, used bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "name", "url", "type", "mime_type", "size", "width", "height",
		"alt_en", "alt_bg", "alt_ru", "tags_json", "uploader_id", "is_used",
		"created_at", "updated_at",
	}).AddRow(id, "hero.jpg", "/uploads/images/abc.jpg", "image", "image/jpeg",
		2048, 0, 0, "Hero", "Герой", "", `["homepage","hero"]`, 1, used, now, now)
}

func TestMediaDeleteUnused(t *testing.T) {
	repo, mock := newMediaMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM media WHERE id=? AND is_used=FALSE")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaDeleteInUse(t *testing.T) {
	repo, mock := newMediaMock(t)

	// The guarded DELETE touches nothing; the follow-up read finds the row,
	// so the record must be protected rather than absent.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM media WHERE id=? AND is_used=FALSE")).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM media WHERE id=\\?").
		WithArgs(uint64(3)).
		WillReturnRows(mediaRow(3, true))

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrMediaInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaDeleteMissing(t *testing.T) {
	repo, mock := newMediaMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM media WHERE id=? AND is_used=FALSE")).
		WithArgs(uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM media WHERE id=\\?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), ErrNotFound)
}

func TestMediaCreateNormalizesTags(t *testing.T) {
	repo, mock := newMediaMock(t)

	// Tags land in storage lowercased and trimmed so the lowercased tag
	// filter in List matches however the admin typed them.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO media")).
		WithArgs("hero.jpg", "/uploads/images/abc.jpg", "image", "image/jpeg",
			int64(2048), 0, 0, "", "", "", `["hero","banner"]`, nil, false).
		WillReturnResult(sqlmock.NewResult(3, 1))

	m := model.Media{
		Name: "hero.jpg", URL: "/uploads/images/abc.jpg",
		Type: "image", MimeType: "image/jpeg", Size: 2048,
		Tags: []string{"Hero", " Banner ", ""},
	}
	id, err := repo.Create(context.Background(), &m)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMediaListTagFilter(t *testing.T) {
	repo, mock := newMediaMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM media WHERE tags_json LIKE ?")).
		WithArgs(`%"hero"%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM media WHERE tags_json LIKE \\?").
		WithArgs(`%"hero"%`, 20, 0).
		WillReturnRows(mediaRow(3, false))

	items, total, err := repo.List(context.Background(), MediaFilter{Tag: "Hero", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"homepage", "hero"}, items[0].Tags)
	assert.Equal(t, uint64(1), items[0].UploaderID)
	assert.False(t, items[0].InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}
