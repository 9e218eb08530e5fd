package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type SupportingInfoRepo struct{ db *sqlx.DB }

func (r *SupportingInfoRepo) Create(ctx context.Context, s *domain.SupportingInfo) error {
	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt, s.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO supporting_info (id, dam_id, type, title, description,
		location, danger_level, created_at, updated_at)
		VALUES (:id, :dam_id, :type, :title, :description, :location, :danger_level,
		:created_at, :updated_at)`, s)
}

func (r *SupportingInfoRepo) Get(ctx context.Context, id string) (*domain.SupportingInfo, error) {
	return get[domain.SupportingInfo](ctx, r.db, `SELECT * FROM supporting_info WHERE id = ?`, id)
}

func (r *SupportingInfoRepo) ListByDam(ctx context.Context, damID string) ([]domain.SupportingInfo, error) {
	return list[domain.SupportingInfo](ctx, r.db,
		`SELECT * FROM supporting_info WHERE dam_id = ? ORDER BY created_at DESC, id DESC`, damID)
}

func (r *SupportingInfoRepo) Update(ctx context.Context, s *domain.SupportingInfo) error {
	s.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE supporting_info SET type = :type, title = :title,
		description = :description, location = :location, danger_level = :danger_level,
		updated_at = :updated_at WHERE id = :id`, s)
}

func (r *SupportingInfoRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM supporting_info WHERE id = ?`, id)
}
