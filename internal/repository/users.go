package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

// Create stores u with its email lower-cased. A taken email yields ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt, u.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO users (id, name, email, password_hash, mobile, place,
		state, role, profile_image, created_at, updated_at)
		VALUES (:id, :name, :email, :password_hash, :mobile, :place, :state, :role, :profile_image,
		:created_at, :updated_at)`, u)
}

func (r *UserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	return get[domain.User](ctx, r.db, `SELECT * FROM users WHERE id = ?`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return get[domain.User](ctx, r.db, `SELECT * FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (r *UserRepo) SetProfileImage(ctx context.Context, id, url string) error {
	return execOne(ctx, r.db, `UPDATE users SET profile_image = ?, updated_at = ? WHERE id = ?`, url, now(), id)
}

// SavedDamIDs lists the bookmarked dams of a user in the order they were saved.
func (r *UserRepo) SavedDamIDs(ctx context.Context, userID string) ([]string, error) {
	return list[string](ctx, r.db,
		`SELECT dam_id FROM user_saved_dams WHERE user_id = ? ORDER BY created_at, dam_id`, userID)
}

func (r *UserRepo) HasSavedDam(ctx context.Context, userID, damID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		r.db.Rebind(`SELECT COUNT(*) FROM user_saved_dams WHERE user_id = ? AND dam_id = ?`), userID, damID)
	return n > 0, err
}

func (r *UserRepo) AddSavedDam(ctx context.Context, userID, damID string) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO user_saved_dams (user_id, dam_id, created_at) VALUES (?, ?, ?)`),
		userID, damID, now())
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *UserRepo) RemoveSavedDam(ctx context.Context, userID, damID string) error {
	return execOne(ctx, r.db, `DELETE FROM user_saved_dams WHERE user_id = ? AND dam_id = ?`, userID, damID)
}
