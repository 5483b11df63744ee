package middleware

import (
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
	"github.com/bsgholding/cms-backend/internal/utils"
)

const testSecret = "test-secret"

func runJWTAuth(t *testing.T, users *repository.UserRepo, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c, reached
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, reached := runJWTAuth(t, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _, reached := runJWTAuth(t, nil, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthUnknownSubject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	access, err := utils.NewAccessToken(testSecret, 99, model.RoleAdmin, 1)
	require.NoError(t, err)

	rec, _, reached := runJWTAuth(t, repository.NewUserRepo(db), "Bearer "+access.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestJWTAuthValidToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "email", "password_hash", "display_name", "role",
		"last_login_at", "created_at", "updated_at",
	}).AddRow(7, "admin@example.com", "$2a$10$hash", "Admin", model.RoleAdmin, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WithArgs(uint64(7)).WillReturnRows(rows)

	access, err := utils.NewAccessToken(testSecret, 7, model.RoleAdmin, 1)
	require.NoError(t, err)

	rec, c, reached := runJWTAuth(t, repository.NewUserRepo(db), "Bearer "+access.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	assert.Equal(t, uint64(7), c.Get(CtxUserID))
	assert.Equal(t, model.RoleAdmin, c.Get(CtxRole))
	u, ok := c.Get(CtxUser).(model.User)
	require.True(t, ok)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
