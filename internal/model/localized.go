package model

import "strings"

// Supported content locales. English and Bulgarian are mandatory for every
// human-facing string; Russian is optional and falls back to English.
const (
	LocaleEN = "en"
	LocaleBG = "bg"
	LocaleRU = "ru"
)

// LocalizedText carries the same human-facing string in up to three
// languages. It is embedded wherever the schema stores names, titles or
// descriptions and maps onto three columns (<field>_en, <field>_bg,
// <field>_ru) in the database.
type LocalizedText struct {
	En string `json:"en"`
	Bg string `json:"bg"`
	Ru string `json:"ru,omitempty"`
}

// NormalizeLocale maps an arbitrary locale string onto a supported locale,
// defaulting to English for anything unknown or empty.
func NormalizeLocale(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case LocaleBG:
		return LocaleBG
	case LocaleRU:
		return LocaleRU
	default:
		return LocaleEN
	}
}

// Resolve returns the string for the requested locale, falling back to
// English when the locale's value is empty. The locale must already be
// normalized.
func (t LocalizedText) Resolve(locale string) string {
	switch locale {
	case LocaleBG:
		if t.Bg != "" {
			return t.Bg
		}
	case LocaleRU:
		if t.Ru != "" {
			return t.Ru
		}
	}
	return t.En
}

// Validate checks the required locales and returns one message per missing
// value, each prefixed with the field name so handlers can concatenate them
// into a single validation error.
func (t LocalizedText) Validate(field string) []string {
	var msgs []string
	if strings.TrimSpace(t.En) == "" {
		msgs = append(msgs, field+".en is required")
	}
	if strings.TrimSpace(t.Bg) == "" {
		msgs = append(msgs, field+".bg is required")
	}
	return msgs
}
