package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type ClientRepo struct{ DB *sql.DB }

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{DB: db} }

// ClientFilter defines filters & pagination for listing clients.
type ClientFilter struct {
	Industry string
	Featured *bool
	Page     int
	Limit    int
}

const clientCols = "id,name_en,name_bg,name_ru,description_en,description_bg,description_ru," +
	"logo_url,website,industry,is_featured,display_order,testimonial_json,created_at,updated_at"

func scanClient(scan func(dest ...any) error) (model.Client, error) {
	var c model.Client
	var testimonialJSON sql.NullString
	err := scan(&c.ID,
		&c.Name.En, &c.Name.Bg, &c.Name.Ru,
		&c.Description.En, &c.Description.Bg, &c.Description.Ru,
		&c.LogoURL, &c.Website, &c.Industry, &c.Featured, &c.Order,
		&testimonialJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	if testimonialJSON.Valid && testimonialJSON.String != "" {
		_ = json.Unmarshal([]byte(testimonialJSON.String), &c.Testimonial)
	}
	return c, nil
}

func optionalTestimonial(v *model.Testimonial) any {
	if v == nil {
		return nil
	}
	return v
}

// List returns one page of clients plus the unpaginated total, ordered by
// display order then newest first.
func (r *ClientRepo) List(ctx context.Context, f ClientFilter) ([]model.Client, int64, error) {
	where := []string{}
	args := []any{}

	if f.Industry != "" {
		where = append(where, "LOWER(industry) = ?")
		args = append(args, strings.ToLower(f.Industry))
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
		"SELECT COUNT(*) FROM clients WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.Page, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+clientCols+" FROM clients WHERE "+cond+
			" ORDER BY display_order, created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (model.Client, error) {
	c, err := scanClient(r.DB.QueryRowContext(ctx,
		"SELECT "+clientCols+" FROM clients WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *ClientRepo) Create(ctx context.Context, c *model.Client) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO clients (name_en,name_bg,name_ru,description_en,description_bg,description_ru,"+
			"logo_url,website,industry,is_featured,display_order,testimonial_json)"+
			" VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		c.Name.En, c.Name.Bg, c.Name.Ru,
		c.Description.En, c.Description.Bg, c.Description.Ru,
		c.LogoURL, c.Website, c.Industry, c.Featured, c.Order,
		marshalOrNil(optionalTestimonial(c.Testimonial)))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET name_en=?,name_bg=?,name_ru=?,description_en=?,description_bg=?,description_ru=?,"+
			"logo_url=?,website=?,industry=?,is_featured=?,display_order=?,testimonial_json=? WHERE id=?",
		c.Name.En, c.Name.Bg, c.Name.Ru,
		c.Description.En, c.Description.Bg, c.Description.Ru,
		c.LogoURL, c.Website, c.Industry, c.Featured, c.Order,
		marshalOrNil(optionalTestimonial(c.Testimonial)), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM clients WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag atomically.
func (r *ClientRepo) ToggleFeatured(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE clients SET is_featured = NOT is_featured WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
