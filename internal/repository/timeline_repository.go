package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type TimelineRepo struct{ DB *sql.DB }

func NewTimelineRepo(db *sql.DB) *TimelineRepo { return &TimelineRepo{DB: db} }

// TimelineFilter defines filters & pagination for listing history entries.
// YearFrom/YearTo bound the decade range; zero means unbounded.
type TimelineFilter struct {
	Featured *bool
	YearFrom int
	YearTo   int
	Page     int
	Limit    int
}

const timelineCols = "id,year,title_en,title_bg,title_ru,description_en,description_bg,description_ru," +
	"icon,color,image_url,is_featured,display_order,created_at,updated_at"

func scanTimelineEntry(scan func(dest ...any) error) (model.TimelineEntry, error) {
	var e model.TimelineEntry
	err := scan(&e.ID, &e.Year,
		&e.Title.En, &e.Title.Bg, &e.Title.Ru,
		&e.Description.En, &e.Description.Bg, &e.Description.Ru,
		&e.Icon, &e.Color, &e.ImageURL, &e.Featured, &e.Order,
		&e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// List returns one page of timeline entries plus the unpaginated total.
// Unlike the other resources, history reads oldest-first: ascending year.
func (r *TimelineRepo) List(ctx context.Context, f TimelineFilter) ([]model.TimelineEntry, int64, error) {
	where := []string{}
	args := []any{}

	if f.Featured != nil {
		where = append(where, "is_featured = ?")
		args = append(args, *f.Featured)
	}
	if f.YearFrom > 0 {
		where = append(where, "year >= ?")
		args = append(args, f.YearFrom)
	}
	if f.YearTo > 0 {
		where = append(where, "year <= ?")
		args = append(args, f.YearTo)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM timeline_entries WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.Page, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+timelineCols+" FROM timeline_entries WHERE "+cond+
			" ORDER BY year, display_order, id LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.TimelineEntry{}
	for rows.Next() {
		e, err := scanTimelineEntry(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, rows.Err()
}

func (r *TimelineRepo) GetByID(ctx context.Context, id uint64) (model.TimelineEntry, error) {
	e, err := scanTimelineEntry(r.DB.QueryRowContext(ctx,
		"SELECT "+timelineCols+" FROM timeline_entries WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

func (r *TimelineRepo) Create(ctx context.Context, e *model.TimelineEntry) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO timeline_entries (year,title_en,title_bg,title_ru,"+
			"description_en,description_bg,description_ru,icon,color,image_url,is_featured,display_order)"+
			" VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		e.Year, e.Title.En, e.Title.Bg, e.Title.Ru,
		e.Description.En, e.Description.Bg, e.Description.Ru,
		e.Icon, e.Color, e.ImageURL, e.Featured, e.Order)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

func (r *TimelineRepo) Update(ctx context.Context, e *model.TimelineEntry) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE timeline_entries SET year=?,title_en=?,title_bg=?,title_ru=?,"+
			"description_en=?,description_bg=?,description_ru=?,icon=?,color=?,image_url=?,"+
			"is_featured=?,display_order=? WHERE id=?",
		e.Year, e.Title.En, e.Title.Bg, e.Title.Ru,
		e.Description.En, e.Description.Bg, e.Description.Ru,
		e.Icon, e.Color, e.ImageURL, e.Featured, e.Order, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TimelineRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM timeline_entries WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleFeatured flips the featured flag atomically.
func (r *TimelineRepo) ToggleFeatured(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE timeline_entries SET is_featured = NOT is_featured WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
