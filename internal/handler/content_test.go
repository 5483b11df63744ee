package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/repository"
)

func newContentHandler(t *testing.T) (*ContentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContentHandler(repository.NewPageContentRepo(db), nil), mock
}

func TestValidatePageContent(t *testing.T) {
	p := model.PageContent{
		Page:    "home",
		Section: "hero",
		Content: model.ContentBlock{Title: model.LocalizedText{En: "Welcome", Bg: "Добре дошли"}},
	}
	assert.Empty(t, validatePageContent(&p))

	p.Page = "blog"
	msgs := validatePageContent(&p)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "page must be one of")

	p = model.PageContent{Page: "about"}
	msgs = validatePageContent(&p)
	assert.Contains(t, msgs, "section is required")
	assert.Contains(t, msgs, "content.title.en is required")
}

func TestContentCreateDuplicateSection(t *testing.T) {
	h, mock := newContentHandler(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO page_contents")).
		WillReturnError(errDuplicateKey{})

	body := `{"page":"home","section":"hero","content":{"title":{"en":"Welcome","bg":"Добре дошли"}}}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/content", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page section already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPageContentLocalize(t *testing.T) {
	p := model.PageContent{
		ID:      3,
		Page:    "home",
		Section: "hero",
		Content: model.ContentBlock{
			Title: model.LocalizedText{En: "Welcome", Bg: "Добре дошли"},
			CTA:   model.LocalizedText{En: "Read more"},
		},
		Active: true,
	}

	bg := p.Localize(model.LocaleBG)
	assert.Equal(t, "Добре дошли", bg.Content.Title)
	// CTA has no Bulgarian text and falls back to English.
	assert.Equal(t, "Read more", bg.Content.CTA)
	assert.True(t, bg.Active)
}
