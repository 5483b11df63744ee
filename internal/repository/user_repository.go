package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/bsgholding/cms-backend/internal/model"
	"github.com/bsgholding/cms-backend/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,password_hash,display_name,role,last_login_at,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.Role,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a user with a freshly hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, displayName, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, display_name, role) VALUES (?,?,?,?)",
		email, hash, displayName, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile changes the display name and/or email of a user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, email, displayName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=?, display_name=? WHERE id=?", email, displayName, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero rows can also mean an identical payload; confirm existence.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// UpdatePassword stores a new bcrypt hash for the user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", hash, id)
	return err
}

// TouchLogin stamps the last successful authentication time.
func (r *UserRepo) TouchLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login_at=UTC_TIMESTAMP() WHERE id=?", id)
	return err
}
