package model

import "time"

// Project status values. A project moves from planned through in-progress
// to complete; the status endpoint validates against this set.
const (
	ProjectPlanned    = "planned"
	ProjectInProgress = "in-progress"
	ProjectComplete   = "complete"
)

// ValidProjectStatus reports whether s is one of the allowed status values.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectComplete:
		return true
	}
	return false
}

// ProjectImage is one entry of a project's ordered image gallery, stored in
// the `project_images` child table. At most one image per project carries
// the featured flag; create/update reject payloads that violate this.
type ProjectImage struct {
	URL      string        `json:"url"`
	Alt      LocalizedText `json:"alt"`
	Featured bool          `json:"isFeatured"`
	Position int           `json:"-"`
}

// ProjectLocation is the localized address plus required coordinates.
type ProjectLocation struct {
	Address LocalizedText `json:"address"`
	Lat     float64       `json:"lat"`
	Lng     float64       `json:"lng"`
}

// ProjectSpec holds free-form technical specification lines. It is stored
// as JSON in the `spec_json` column; the API treats it as an opaque block.
type ProjectSpec struct {
	Area   string        `json:"area,omitempty"`
	Floors int           `json:"floors,omitempty"`
	Units  int           `json:"units,omitempty"`
	Notes  LocalizedText `json:"notes,omitempty"`
}

// ProjectPhase is one row of the project's own timeline (distinct from the
// company timeline entity). Stored as JSON in the `timeline_json` column.
type ProjectPhase struct {
	Label LocalizedText `json:"label"`
	Date  string        `json:"date,omitempty"`
	Done  bool          `json:"done"`
}

// ProjectBudget summarizes planned versus spent amounts. Stored as JSON in
// the `budget_json` column.
type ProjectBudget struct {
	Currency string  `json:"currency,omitempty"`
	Planned  float64 `json:"planned,omitempty"`
	Spent    float64 `json:"spent,omitempty"`
}

// Project represents a row in the `projects` table together with its image
// gallery from `project_images`.
type Project struct {
	ID                   uint64          `json:"id"`
	Title                LocalizedText   `json:"title"`
	Description          LocalizedText   `json:"description"`
	ShortDescription     LocalizedText   `json:"shortDescription"`
	Category             LocalizedText   `json:"category"`
	Status               string          `json:"status"`
	CompletionPercentage int             `json:"completionPercentage"`
	Featured             bool            `json:"isFeatured"`
	Images               []ProjectImage  `json:"images"`
	Location             ProjectLocation `json:"location"`
	Spec                 *ProjectSpec    `json:"specification,omitempty"`
	Phases               []ProjectPhase  `json:"timeline,omitempty"`
	Budget               *ProjectBudget  `json:"budget,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}
