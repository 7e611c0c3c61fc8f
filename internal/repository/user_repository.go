package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// SQLiteUserRepository implements UserRepository on SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a user repository on db.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a user. The email is stored normalized.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)

	_, err := r.db.ExecContext(ctx, `INSERT INTO users
		(id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Name, user.Email, user.PasswordHash,
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID.
func (r *SQLiteUserRepository) Get(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.queryOne(ctx, `WHERE id = ?`, id.String())
}

// GetByEmail retrieves a user by email, compared after normalization.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.queryOne(ctx, `WHERE email = ?`, domain.NormalizeEmail(email))
}

// Update replaces the name, email and password hash of a stored user.
func (r *SQLiteUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)

	res, err := r.db.ExecContext(ctx, `UPDATE users SET
		name = ?, email = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`,
		user.Name, user.Email, user.PasswordHash, formatTime(user.UpdatedAt),
		user.ID.String(),
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, domain.ErrUserNotFound)
}

func (r *SQLiteUserRepository) queryOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	var (
		u                    domain.User
		id, created, updated string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, email, password_hash, created_at, updated_at
		FROM users `+where, arg).
		Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.ID = domain.UserID(id)
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &u, nil
}
