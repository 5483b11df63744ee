package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, LocaleEN, NormalizeLocale(""))
	assert.Equal(t, LocaleEN, NormalizeLocale("de"))
	assert.Equal(t, LocaleBG, NormalizeLocale("BG"))
	assert.Equal(t, LocaleRU, NormalizeLocale(" ru "))
}

func TestLocalizedTextResolve(t *testing.T) {
	full := LocalizedText{En: "Projects", Bg: "Проекти", Ru: "Проекты"}
	assert.Equal(t, "Projects", full.Resolve(LocaleEN))
	assert.Equal(t, "Проекти", full.Resolve(LocaleBG))
	assert.Equal(t, "Проекты", full.Resolve(LocaleRU))

	// Missing translations fall back to English.
	partial := LocalizedText{En: "Projects", Bg: "Проекти"}
	assert.Equal(t, "Projects", partial.Resolve(LocaleRU))
	assert.Equal(t, "Projects", LocalizedText{En: "Projects"}.Resolve(LocaleBG))
}

func TestLocalizedTextValidate(t *testing.T) {
	assert.Empty(t, LocalizedText{En: "a", Bg: "b"}.Validate("title"))

	msgs := LocalizedText{Ru: "только русский"}.Validate("title")
	assert.Equal(t, []string{"title.en is required", "title.bg is required"}, msgs)

	// Whitespace-only values do not count.
	msgs = LocalizedText{En: "  ", Bg: "b"}.Validate("name")
	assert.Equal(t, []string{"name.en is required"}, msgs)
}

func TestTimelineEntryLocalize(t *testing.T) {
	e := TimelineEntry{
		ID:          4,
		Year:        1998,
		Title:       LocalizedText{En: "Founded", Bg: "Основана"},
		Description: LocalizedText{En: "The company was founded.", Bg: "Компанията е основана."},
	}

	bg := e.Localize(LocaleBG)
	assert.Equal(t, uint64(4), bg.ID)
	assert.Equal(t, 1998, bg.Year)
	assert.Equal(t, "Основана", bg.Title)
	assert.Equal(t, "Компанията е основана.", bg.Description)

	// Russian is absent, so the projection falls back to English.
	ru := e.Localize(LocaleRU)
	assert.Equal(t, "Founded", ru.Title)
}
