package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type ProjectRepo struct{ DB *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{DB: db} }

// ProjectFilter defines filters & pagination for listing projects.
type ProjectFilter struct {
	Status   string
	Category string
	Featured *bool
	Page     int
	Limit    int
}

const projectCols = "id," +
	"title_en,title_bg,title_ru," +
	"description_en,description_bg,description_ru," +
	"short_description_en,short_description_bg,short_description_ru," +
	"category_en,category_bg,category_ru," +
	"status,completion_pct,is_featured," +
	"address_en,address_bg,address_ru,lat,lng," +
	"spec_json,timeline_json,budget_json," +
	"created_at,updated_at"

// scanProject reads one row produced by a SELECT over projectCols.
func scanProject(scan func(dest ...any) error) (model.Project, error) {
	var p model.Project
	var specJSON, phasesJSON, budgetJSON sql.NullString
	err := scan(&p.ID,
		&p.Title.En, &p.Title.Bg, &p.Title.Ru,
		&p.Description.En, &p.Description.Bg, &p.Description.Ru,
		&p.ShortDescription.En, &p.ShortDescription.Bg, &p.ShortDescription.Ru,
		&p.Category.En, &p.Category.Bg, &p.Category.Ru,
		&p.Status, &p.CompletionPercentage, &p.Featured,
		&p.Location.Address.En, &p.Location.Address.Bg, &p.Location.Address.Ru,
		&p.Location.Lat, &p.Location.Lng,
		&specJSON, &phasesJSON, &budgetJSON,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	// JSON sub-trees are optional; a NULL column simply leaves the field nil.
	if specJSON.Valid && specJSON.String != "" {
		_ = json.Unmarshal([]byte(specJSON.String), &p.Spec)
	}
	if phasesJSON.Valid && phasesJSON.String != "" {
		_ = json.Unmarshal([]byte(phasesJSON.String), &p.Phases)
	}
	if budgetJSON.Valid && budgetJSON.String != "" {
		_ = json.Unmarshal([]byte(budgetJSON.String), &p.Budget)
	}
	return p, nil
}

// marshalOrNil turns an optional sub-tree into a JSON string or NULL.
func marshalOrNil(v any) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(b)
}

// List returns one page of projects plus the unpaginated total. The image
// gallery of every returned project is loaded in a second query.
func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]model.Project, int64, error) {
	where := []string{}
	args := []any{}

	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where = append(where, "(LOWER(category_en) LIKE ? OR LOWER(category_bg) LIKE ?)")
		like := "%" + strings.ToLower(f.Category) + "%"
		args = append(args, like, like)
	}
	if f.Featured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.Featured)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.Page, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+projectCols+" FROM projects WHERE "+cond+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Project{}
	ids := []uint64{}
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		p.Images = []model.ProjectImage{}
		items = append(items, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachImages(ctx, items, ids); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// attachImages loads the galleries for a page of projects in one query.
func (r *ProjectRepo) attachImages(ctx context.Context, items []model.Project, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT project_id,url,alt_en,alt_bg,alt_ru,is_featured,position FROM project_images"+
			" WHERE project_id IN ("+strings.Join(ph, ",")+") ORDER BY project_id, position",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[uint64]int{}
	for i := range items {
		byID[items[i].ID] = i
	}
	for rows.Next() {
		var pid uint64
		var img model.ProjectImage
		if err := rows.Scan(&pid, &img.URL, &img.Alt.En, &img.Alt.Bg, &img.Alt.Ru,
			&img.Featured, &img.Position); err != nil {
			return err
		}
		if i, ok := byID[pid]; ok {
			items[i].Images = append(items[i].Images, img)
		}
	}
	return rows.Err()
}

// GetByID fetches a single project with its gallery.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (model.Project, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+projectCols+" FROM projects WHERE id=? LIMIT 1", id)
	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	items := []model.Project{p}
	if err := r.attachImages(ctx, items, []uint64{id}); err != nil {
		return p, err
	}
	if items[0].Images == nil {
		items[0].Images = []model.ProjectImage{}
	}
	return items[0], nil
}

// Create inserts a project and its image rows, returning the new ID.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO projects ("+
			"title_en,title_bg,title_ru,"+
			"description_en,description_bg,description_ru,"+
			"short_description_en,short_description_bg,short_description_ru,"+
			"category_en,category_bg,category_ru,"+
			"status,completion_pct,is_featured,"+
			"address_en,address_bg,address_ru,lat,lng,"+
			"spec_json,timeline_json,budget_json"+
			") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		p.Title.En, p.Title.Bg, p.Title.Ru,
		p.Description.En, p.Description.Bg, p.Description.Ru,
		p.ShortDescription.En, p.ShortDescription.Bg, p.ShortDescription.Ru,
		p.Category.En, p.Category.Bg, p.Category.Ru,
		p.Status, p.CompletionPercentage, p.Featured,
		p.Location.Address.En, p.Location.Address.Bg, p.Location.Address.Ru,
		p.Location.Lat, p.Location.Lng,
		marshalOrNil(optionalSpec(p.Spec)), marshalOrNil(optionalPhases(p.Phases)), marshalOrNil(optionalBudget(p.Budget)))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := r.replaceImages(ctx, uint64(id), p.Images); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update rewrites all columns of an existing project and replaces its
// gallery. The handler merges partial payloads into the stored record
// before calling this.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET "+
			"title_en=?,title_bg=?,title_ru=?,"+
			"description_en=?,description_bg=?,description_ru=?,"+
			"short_description_en=?,short_description_bg=?,short_description_ru=?,"+
			"category_en=?,category_bg=?,category_ru=?,"+
			"status=?,completion_pct=?,is_featured=?,"+
			"address_en=?,address_bg=?,address_ru=?,lat=?,lng=?,"+
			"spec_json=?,timeline_json=?,budget_json=? WHERE id=?",
		p.Title.En, p.Title.Bg, p.Title.Ru,
		p.Description.En, p.Description.Bg, p.Description.Ru,
		p.ShortDescription.En, p.ShortDescription.Bg, p.ShortDescription.Ru,
		p.Category.En, p.Category.Bg, p.Category.Ru,
		p.Status, p.CompletionPercentage, p.Featured,
		p.Location.Address.En, p.Location.Address.Bg, p.Location.Address.Ru,
		p.Location.Lat, p.Location.Lng,
		marshalOrNil(optionalSpec(p.Spec)), marshalOrNil(optionalPhases(p.Phases)), marshalOrNil(optionalBudget(p.Budget)),
		p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return r.replaceImages(ctx, p.ID, p.Images)
}

// replaceImages swaps the whole gallery for a project.
func (r *ProjectRepo) replaceImages(ctx context.Context, projectID uint64, images []model.ProjectImage) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM project_images WHERE project_id=?", projectID); err != nil {
		return err
	}
	for i, img := range images {
		if _, err := r.DB.ExecContext(ctx,
			"INSERT INTO project_images (project_id,url,alt_en,alt_bg,alt_ru,is_featured,position)"+
				" VALUES (?,?,?,?,?,?,?)",
			projectID, img.URL, img.Alt.En, img.Alt.Bg, img.Alt.Ru, img.Featured, i); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a project; image rows go with it via ON DELETE CASCADE.
func (r *ProjectRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag in a single atomic UPDATE so
// concurrent toggles cannot lose each other's writes.
func (r *ProjectRepo) ToggleFeatured(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET is_featured = NOT is_featured WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus updates the status enum and, when pct is non-nil, the
// completion percentage in the same statement.
func (r *ProjectRepo) SetStatus(ctx context.Context, id uint64, status string, pct *int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE projects SET status=?, completion_pct=COALESCE(?, completion_pct) WHERE id=?",
		status, pct, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Typed nil pointers must become untyped nils before marshalOrNil so the
// driver writes a NULL column instead of the string "null".
func optionalSpec(v *model.ProjectSpec) any {
	if v == nil {
		return nil
	}
	return v
}

func optionalBudget(v *model.ProjectBudget) any {
	if v == nil {
		return nil
	}
	return v
}

func optionalPhases(v []model.ProjectPhase) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// pageToLimitOffset clamps pagination inputs and converts them to SQL terms.
func pageToLimitOffset(page, limit int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
