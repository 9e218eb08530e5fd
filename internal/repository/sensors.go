package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type SensorRepo struct{ db *sqlx.DB }

func (r *SensorRepo) Create(ctx context.Context, s *domain.Sensor) error {
	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt, s.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO sensors (id, dam_id, sensor_id, type, status,
		battery_status, last_sync, last_reading, unit, created_at, updated_at)
		VALUES (:id, :dam_id, :sensor_id, :type, :status, :battery_status, :last_sync,
		:last_reading, :unit, :created_at, :updated_at)`, s)
}

func (r *SensorRepo) Get(ctx context.Context, id string) (*domain.Sensor, error) {
	return get[domain.Sensor](ctx, r.db, `SELECT * FROM sensors WHERE id = ?`, id)
}

// List returns all sensors, or only those of damID when it is not empty.
func (r *SensorRepo) List(ctx context.Context, damID string) ([]domain.Sensor, error) {
	if damID == "" {
		return list[domain.Sensor](ctx, r.db, `SELECT * FROM sensors ORDER BY created_at DESC`)
	}
	return list[domain.Sensor](ctx, r.db, `SELECT * FROM sensors WHERE dam_id = ? ORDER BY created_at DESC`, damID)
}

func (r *SensorRepo) Update(ctx context.Context, s *domain.Sensor) error {
	s.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE sensors SET dam_id = :dam_id, sensor_id = :sensor_id,
		type = :type, status = :status, battery_status = :battery_status, last_sync = :last_sync,
		last_reading = :last_reading, unit = :unit, updated_at = :updated_at
		WHERE id = :id`, s)
}

func (r *SensorRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM sensors WHERE id = ?`, id)
}
