package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type SafetyRepo struct{ db *sqlx.DB }

func (r *SafetyRepo) Create(ctx context.Context, s *domain.Safety) error {
	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt, s.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO safety (id, dam_id, flood_risk_level, seepage_report,
		structural_health, earthquake_zone, maintenance, emergency_contact, created_at, updated_at)
		VALUES (:id, :dam_id, :flood_risk_level, :seepage_report, :structural_health, :earthquake_zone,
		:maintenance, :emergency_contact, :created_at, :updated_at)`, s)
}

func (r *SafetyRepo) GetByDam(ctx context.Context, damID string) (*domain.Safety, error) {
	return get[domain.Safety](ctx, r.db, `SELECT * FROM safety WHERE dam_id = ?`, damID)
}

func (r *SafetyRepo) Update(ctx context.Context, s *domain.Safety) error {
	s.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE safety SET flood_risk_level = :flood_risk_level,
		seepage_report = :seepage_report, structural_health = :structural_health,
		earthquake_zone = :earthquake_zone, maintenance = :maintenance,
		emergency_contact = :emergency_contact, updated_at = :updated_at
		WHERE id = :id`, s)
}
