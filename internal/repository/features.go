package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type FeatureRepo struct{ db *sqlx.DB }

func (r *FeatureRepo) Create(ctx context.Context, f *domain.Feature) error {
	if f.ID == "" {
		f.ID = newID()
	}
	f.CreatedAt, f.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO features (id, name, description, category, status,
		admin_only, created_by, created_at, updated_at)
		VALUES (:id, :name, :description, :category, :status, :admin_only, :created_by,
		:created_at, :updated_at)`, f)
}

func (r *FeatureRepo) Get(ctx context.Context, id string) (*domain.Feature, error) {
	return get[domain.Feature](ctx, r.db, `SELECT * FROM features WHERE id = ?`, id)
}

func (r *FeatureRepo) List(ctx context.Context) ([]domain.Feature, error) {
	return list[domain.Feature](ctx, r.db, `SELECT * FROM features ORDER BY created_at DESC, id DESC`)
}

func (r *FeatureRepo) Update(ctx context.Context, f *domain.Feature) error {
	f.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE features SET name = :name, description = :description,
		category = :category, status = :status, admin_only = :admin_only, updated_at = :updated_at
		WHERE id = :id`, f)
}

func (r *FeatureRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM features WHERE id = ?`, id)
}
