package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
)

type MediaRepo struct{ DB *sql.DB }

func NewMediaRepo(db *sql.DB) *MediaRepo { return &MediaRepo{DB: db} }

// MediaFilter defines filters & pagination for the media library.
type MediaFilter struct {
	Type  string
	Tag   string
	Page  int
	Limit int
}

const mediaCols = "id,name,url,type,mime_type,size,width,height," +
	"alt_en,alt_bg,alt_ru,tags_json,uploader_id,is_used,created_at,updated_at"

func scanMedia(scan func(dest ...any) error) (model.Media, error) {
	var m model.Media
	var tagsJSON sql.NullString
	var uploader sql.NullInt64
	err := scan(&m.ID, &m.Name, &m.URL, &m.Type, &m.MimeType, &m.Size, &m.Width, &m.Height,
		&m.Alt.En, &m.Alt.Bg, &m.Alt.Ru, &tagsJSON, &uploader, &m.InUse,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		_ = json.Unmarshal([]byte(tagsJSON.String), &m.Tags)
	}
	if uploader.Valid {
		m.UploaderID = uint64(uploader.Int64)
	}
	return m, nil
}

func optionalTags(v []string) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// normalizeTags lowercases and trims tags before they hit storage so the
// lowercased tag filter in List always matches what was written.
func normalizeTags(v []string) []string {
	out := make([]string, 0, len(v))
	for _, t := range v {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// The uploader reference is weak: a zero ID stores NULL so deleting users
// never blocks on media rows.
func optionalUploader(id uint64) any {
	if id == 0 {
		return nil
	}
	return id
}

// List returns one page of media records plus the unpaginated total,
// newest first.
func (r *MediaRepo) List(ctx context.Context, f MediaFilter) ([]model.Media, int64, error) {
	where := []string{}
	args := []any{}

	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.Tag != "" {
		// Tags are a JSON array of strings; a LIKE over the serialized form
		// is enough for the admin library's tag filter.
		where = append(where, "tags_json LIKE ?")
		args = append(args, "%\""+strings.ToLower(f.Tag)+"\"%")
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM media WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageToLimitOffset(f.Page, f.Limit)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+mediaCols+" FROM media WHERE "+cond+
			" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []model.Media{}
	for rows.Next() {
		m, err := scanMedia(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *MediaRepo) GetByID(ctx context.Context, id uint64) (model.Media, error) {
	m, err := scanMedia(r.DB.QueryRowContext(ctx,
		"SELECT "+mediaCols+" FROM media WHERE id=? LIMIT 1", id).Scan)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

func (r *MediaRepo) Create(ctx context.Context, m *model.Media) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO media (name,url,type,mime_type,size,width,height,"+
			"alt_en,alt_bg,alt_ru,tags_json,uploader_id,is_used)"+
			" VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)",
		m.Name, m.URL, m.Type, m.MimeType, m.Size, m.Width, m.Height,
		m.Alt.En, m.Alt.Bg, m.Alt.Ru,
		marshalOrNil(optionalTags(normalizeTags(m.Tags))), optionalUploader(m.UploaderID), m.InUse)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// UpdateMeta rewrites the editable metadata; the stored file and its URL
// are immutable after upload.
func (r *MediaRepo) UpdateMeta(ctx context.Context, m *model.Media) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE media SET name=?,alt_en=?,alt_bg=?,alt_ru=?,tags_json=? WHERE id=?",
		m.Name, m.Alt.En, m.Alt.Bg, m.Alt.Ru,
		marshalOrNil(optionalTags(normalizeTags(m.Tags))), m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// SetUsed marks a record as referenced (or not) by page content.
func (r *MediaRepo) SetUsed(ctx context.Context, id uint64, used bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE media SET is_used=? WHERE id=?", used, id)
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

// Delete removes a record unless its in-use flag is set. The guard lives in
// the DELETE's WHERE clause so a concurrent SetUsed cannot race the check.
func (r *MediaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM media WHERE id=? AND is_used=FALSE", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Nothing deleted: either absent or protected by the in-use flag.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrMediaInUse
}
