package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetCredentials fetches a user and password hash by email or username.
func (r UserRepo) GetCredentials(ctx context.Context, emailOrUsername string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, username, email, phone, password_hash, role, status, created_at
		FROM users WHERE email=? OR username=?`,
		emailOrUsername, emailOrUsername).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return u, hash, nil
}

func (r UserRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, username, email, phone, role, status, created_at
		FROM users WHERE id=?`, id).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// Create inserts a user with role 'user' and status 'active'.
func (r UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, 'user', 'active')`,
		u.Name, u.Username, u.Email, u.Phone, passwordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ConflictError{Resource: "user", Msg: "email or username already registered", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	u.ID, _ = res.LastInsertId()
	u.Role = "user"
	u.Status = "active"
	return nil
}
