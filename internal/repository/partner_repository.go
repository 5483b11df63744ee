package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type PartnerRepo struct{ DB *sql.DB }

func NewPartnerRepo(db *sql.DB) *PartnerRepo { return &PartnerRepo{DB: db} }

// PartnerFilter defines filters & pagination for listing partners.
type PartnerFilter struct {
	Category string
	Featured *bool
	Page     int
	Limit    int
}

const partnerCols = "id,name_en,name_bg,name_ru,description_en,description_bg,description_ru," +
	"logo_url,website,category,is_featured,display_order,created_at,updated_at"

func scanPartner(scan func(dest ...any) error) (model.Partner, error) {
	var p model.Partner
	err := scan(&p.ID,
		&p.Name.En, &p.Name.Bg, &p.Name.Ru,
		&p.Description.En, &p.Description.Bg, &p.Description.Ru,
		&p.LogoURL, &p.Website, &p.Category, &p.Featured, &p.Order,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns one page of partners plus the unpaginated total, ordered by
// display order then newest first.
func (r *PartnerRepo) List(ctx context.Context, f PartnerFilter) ([]model.Partner, int64, error) {
	where := []string{}
	args := []any{}

	if f.Category != "" {
		where = append(where, "LOWER(category) = ?")
		args = append(args, strings.ToLower(f.Category))
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
		"SELECT COUNT(*) FROM partners WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.Page, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+partnerCols+" FROM partners WHERE "+cond+
			" ORDER BY display_order, created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *PartnerRepo) GetByID(ctx context.Context, id uint64) (model.Partner, error) {
	p, err := scanPartner(r.DB.QueryRowContext(ctx,
		"SELECT "+partnerCols+" FROM partners WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

func (r *PartnerRepo) Create(ctx context.Context, p *model.Partner) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO partners (name_en,name_bg,name_ru,description_en,description_bg,description_ru,"+
			"logo_url,website,category,is_featured,display_order) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		p.Name.En, p.Name.Bg, p.Name.Ru,
		p.Description.En, p.Description.Bg, p.Description.Ru,
		p.LogoURL, p.Website, p.Category, p.Featured, p.Order)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *PartnerRepo) Update(ctx context.Context, p *model.Partner) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE partners SET name_en=?,name_bg=?,name_ru=?,description_en=?,description_bg=?,description_ru=?,"+
			"logo_url=?,website=?,category=?,is_featured=?,display_order=? WHERE id=?",
		p.Name.En, p.Name.Bg, p.Name.Ru,
		p.Description.En, p.Description.Bg, p.Description.Ru,
		p.LogoURL, p.Website, p.Category, p.Featured, p.Order, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, p.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PartnerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM partners WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag atomically.
func (r *PartnerRepo) ToggleFeatured(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE partners SET is_featured = NOT is_featured WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
