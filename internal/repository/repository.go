// Package repository holds the SQL access for every stored entity. Queries are
// written with ? placeholders and rebound for the active driver.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Repos struct {
	States         *StateRepo
	Rivers         *RiverRepo
	Dams           *DamRepo
	Status         *StatusRepo
	Safety         *SafetyRepo
	Sensors        *SensorRepo
	SupportingInfo *SupportingInfoRepo
	Usage          *UsageRepo
	Features       *FeatureRepo
	Users          *UserRepo
}

func New(db *sqlx.DB) *Repos {
	return &Repos{
		States:         &StateRepo{db: db},
		Rivers:         &RiverRepo{db: db},
		Dams:           &DamRepo{db: db},
		Status:         &StatusRepo{db: db},
		Safety:         &SafetyRepo{db: db},
		Sensors:        &SensorRepo{db: db},
		SupportingInfo: &SupportingInfoRepo{db: db},
		Usage:          &UsageRepo{db: db},
		Features:       &FeatureRepo{db: db},
		Users:          &UserRepo{db: db},
	}
}

func now() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }

// get runs a single-row query, mapping an empty result to ErrNotFound.
func get[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.GetContext(ctx, &out, db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// list runs a multi-row query and never returns a nil slice.
func list[T any](ctx context.Context, db *sqlx.DB, query string, args ...any) ([]T, error) {
	out := []T{}
	if err := db.SelectContext(ctx, &out, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return out, nil
}

func namedExec(ctx context.Context, db *sqlx.DB, query string, arg any) error {
	_, err := db.NamedExecContext(ctx, query, arg)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db *sqlx.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func namedExecOne(ctx context.Context, db *sqlx.DB, query string, arg any) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
