package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bsgholding/cms-backend/internal/config"
	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/repository"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	cfg := config.Config{JWTSecret: "test-secret", TokenTTLDays: 1, BcryptCost: bcrypt.MinCost}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestRegisterIssuesToken(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("admin@example.com", sqlmock.AnyArg(), "Admin", model.RoleAdmin).
		WillReturnResult(sqlmock.NewResult(7, 1))

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"Admin@Example.com","password":"pw123456","displayName":"Admin"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Data    authUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, uint64(7), body.Data.ID)
	assert.Equal(t, "admin@example.com", body.Data.Email)
	assert.Equal(t, model.RoleAdmin, body.Data.Role)
	assert.NotEmpty(t, body.Data.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errDuplicateKey{})

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"admin@example.com","password":"pw123456","displayName":"Admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

// errDuplicateKey mimics the driver's duplicate-entry error text.
type errDuplicateKey struct{}

func (errDuplicateKey) Error() string {
	return "Error 1062 (23000): Duplicate entry 'admin@example.com' for key 'uq_users_email'"
}

func TestRegisterMissingFields(t *testing.T) {
	h, _ := newAuthHandler(t)
	rec := postJSON(t, h.Register, "/api/auth/register", `{"email":"a@b.c"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func userRowWithPassword(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "display_name", "role",
		"last_login_at", "created_at", "updated_at",
	}).AddRow(7, "admin@example.com", string(hash), "Admin", model.RoleAdmin, nil, now, now)
}

func TestLoginSuccess(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("admin@example.com").
		WillReturnRows(userRowWithPassword(t, "correct horse"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET last_login_at=UTC_TIMESTAMP()")).
		WithArgs(uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"admin@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Data    authUser `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.Token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("admin@example.com").
		WillReturnRows(userRowWithPassword(t, "correct horse"))

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"admin@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock := newAuthHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Indistinguishable from a wrong password on purpose.
	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}
