package model

import "time"

// Pages whose sections are editable through the content API. The page and
// section identifiers form a unique pair.
var ContentPages = []string{"home", "about", "contact", "projects", "ourHolding"}

// ValidContentPage reports whether p is an editable page identifier.
func ValidContentPage(p string) bool {
	for _, v := range ContentPages {
		if v == p {
			return true
		}
	}
	return false
}

// ContentBlock is the per-locale block of a page section: title, subtitle,
// body and call-to-action label. Stored as JSON in the `content_json` column.
type ContentBlock struct {
	Title       LocalizedText `json:"title"`
	Subtitle    LocalizedText `json:"subtitle,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
	CTA         LocalizedText `json:"cta,omitempty"`
}

// MediaRef is a weak reference to a Media record embedded in a section.
// Stored as JSON in the `media_json` column.
type MediaRef struct {
	MediaID uint64 `json:"mediaId"`
	URL     string `json:"url"`
	Kind    string `json:"kind,omitempty"` // hero, gallery, background ...
}

// DisplaySettings controls section rendering (colors, layout variant).
// Stored as JSON in the `display_json` column.
type DisplaySettings struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	Layout          string `json:"layout,omitempty"`
}

// PageContent represents a row in the `page_contents` table: one editable
// section of a site page, keyed by (page, section).
type PageContent struct {
	ID        uint64          `json:"id"`
	Page      string          `json:"page"`
	Section   string          `json:"section"`
	Content   ContentBlock    `json:"content"`
	Media     []MediaRef      `json:"media,omitempty"`
	Display   DisplaySettings `json:"displaySettings"`
	Active    bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// LocalizedContentBlock is ContentBlock flattened onto one locale.
type LocalizedContentBlock struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
	CTA         string `json:"cta,omitempty"`
}

// LocalizedPageContent is the locale-filtered projection returned by the
// public content list when ?locale= is supplied.
type LocalizedPageContent struct {
	ID      uint64                `json:"id"`
	Page    string                `json:"page"`
	Section string                `json:"section"`
	Content LocalizedContentBlock `json:"content"`
	Media   []MediaRef            `json:"media,omitempty"`
	Display DisplaySettings       `json:"displaySettings"`
	Active  bool                  `json:"isActive"`
}

// Localize projects the section onto a single locale with English fallback.
func (p PageContent) Localize(locale string) LocalizedPageContent {
	return LocalizedPageContent{
		ID:      p.ID,
		Page:    p.Page,
		Section: p.Section,
		Content: LocalizedContentBlock{
			Title:       p.Content.Title.Resolve(locale),
			Subtitle:    p.Content.Subtitle.Resolve(locale),
			Description: p.Content.Description.Resolve(locale),
			CTA:         p.Content.CTA.Resolve(locale),
		},
		Media:   p.Media,
		Display: p.Display,
		Active:  p.Active,
	}
}
