package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type PageContentRepo struct{ DB *sql.DB }

func NewPageContentRepo(db *sql.DB) *PageContentRepo { return &PageContentRepo{DB: db} }

// PageContentFilter defines filters & pagination for listing sections.
// Active is a tri-state: nil returns both active and hidden sections.
type PageContentFilter struct {
	Page       string
	ActiveOnly *bool
	PageNum    int
	Limit      int
}

const pageContentCols = "id,page,section,content_json,media_json,display_json,is_active,created_at,updated_at"

func scanPageContent(scan func(dest ...any) error) (model.PageContent, error) {
	var p model.PageContent
	var contentJSON, mediaJSON, displayJSON sql.NullString
	err := scan(&p.ID, &p.Page, &p.Section, &contentJSON, &mediaJSON, &displayJSON,
		&p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if contentJSON.Valid && contentJSON.String != "" {
		_ = json.Unmarshal([]byte(contentJSON.String), &p.Content)
	}
	if mediaJSON.Valid && mediaJSON.String != "" {
		_ = json.Unmarshal([]byte(mediaJSON.String), &p.Media)
	}
	if displayJSON.Valid && displayJSON.String != "" {
		_ = json.Unmarshal([]byte(displayJSON.String), &p.Display)
	}
	return p, nil
}

func optionalMediaRefs(v []model.MediaRef) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// List returns one page of sections plus the unpaginated total.
func (r *PageContentRepo) List(ctx context.Context, f PageContentFilter) ([]model.PageContent, int64, error) {
	where := []string{}
	args := []any{}

	if f.Page != "" {
		where = append(where, "page = ?")
		args = append(args, f.Page)
	}
	if f.ActiveOnly != nil {
		where = append(where, "is_active = ?")
		args = append(args, *f.ActiveOnly)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM page_contents WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.PageNum, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+pageContentCols+" FROM page_contents WHERE "+cond+
			" ORDER BY page, section LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.PageContent{}
	for rows.Next() {
		p, err := scanPageContent(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *PageContentRepo) GetByID(ctx context.Context, id uint64) (model.PageContent, error) {
	p, err := scanPageContent(r.DB.QueryRowContext(ctx,
		"SELECT "+pageContentCols+" FROM page_contents WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// Create inserts a section; the (page, section) pair is unique.
func (r *PageContentRepo) Create(ctx context.Context, p *model.PageContent) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO page_contents (page,section,content_json,media_json,display_json,is_active)"+
			" VALUES (?,?,?,?,?,?)",
		p.Page, p.Section,
		marshalOrNil(p.Content), marshalOrNil(optionalMediaRefs(p.Media)), marshalOrNil(p.Display),
		p.Active)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicateSection
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *PageContentRepo) Update(ctx context.Context, p *model.PageContent) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE page_contents SET page=?,section=?,content_json=?,media_json=?,display_json=?,is_active=?"+
			" WHERE id=?",
		p.Page, p.Section,
		marshalOrNil(p.Content), marshalOrNil(optionalMediaRefs(p.Media)), marshalOrNil(p.Display),
		p.Active, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateSection
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PageContentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM page_contents WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the visibility flag atomically.
func (r *PageContentRepo) ToggleActive(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE page_contents SET is_active = NOT is_active WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
