package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

const statusColumns = `dam_id, current_water_level, level_unit, max_level, min_level, inflow_rate,
	outflow_rate, spillway_discharge, gate_status, source, sensor_id, power_status, is_active,
	status, last_sync_at, created_at, updated_at`

const statusValues = `:dam_id, :current_water_level, :level_unit, :max_level, :min_level, :inflow_rate,
	:outflow_rate, :spillway_discharge, :gate_status, :source, :sensor_id, :power_status, :is_active,
	:status, :last_sync_at, :created_at, :updated_at`

// StatusRepo stores the current reading per dam and its append-only history.
type StatusRepo struct{ db *sqlx.DB }

func (r *StatusRepo) GetCurrent(ctx context.Context, damID string) (*domain.DamStatus, error) {
	return get[domain.DamStatus](ctx, r.db, `SELECT `+statusColumns+` FROM dam_status WHERE dam_id = ?`, damID)
}

// UpsertCurrent writes st as the current row of its dam. CreatedAt is kept
// from the first insert.
func (r *StatusRepo) UpsertCurrent(ctx context.Context, st *domain.DamStatus) error {
	st.UpdatedAt = now()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = st.UpdatedAt
	}
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO dam_status (`+statusColumns+`) VALUES (`+statusValues+`)
		ON CONFLICT (dam_id) DO UPDATE SET
			current_water_level = excluded.current_water_level,
			level_unit = excluded.level_unit,
			max_level = excluded.max_level,
			min_level = excluded.min_level,
			inflow_rate = excluded.inflow_rate,
			outflow_rate = excluded.outflow_rate,
			spillway_discharge = excluded.spillway_discharge,
			gate_status = excluded.gate_status,
			source = excluded.source,
			sensor_id = excluded.sensor_id,
			power_status = excluded.power_status,
			is_active = excluded.is_active,
			status = excluded.status,
			last_sync_at = excluded.last_sync_at,
			updated_at = excluded.updated_at`, st)
	if err != nil {
		return fmt.Errorf("upsert current status: %w", err)
	}
	return nil
}

// AppendHistory inserts h with a fresh time-ordered id.
func (r *StatusRepo) AppendHistory(ctx context.Context, h *domain.DamStatusHistory) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("history id: %w", err)
	}
	h.ID = id.String()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now()
	}
	if h.UpdatedAt.IsZero() {
		h.UpdatedAt = h.CreatedAt
	}
	if _, err := r.db.NamedExecContext(ctx, `INSERT INTO dam_status_history (id, `+statusColumns+`)
		VALUES (:id, `+statusValues+`)`, h); err != nil {
		return fmt.Errorf("append status history: %w", err)
	}
	return nil
}

// ListHistory returns up to limit rows for the dam, newest first.
func (r *StatusRepo) ListHistory(ctx context.Context, damID string, limit int) ([]domain.DamStatusHistory, error) {
	return list[domain.DamStatusHistory](ctx, r.db, `SELECT id, `+statusColumns+` FROM dam_status_history
		WHERE dam_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, damID, limit)
}

func (r *StatusRepo) CountHistory(ctx context.Context, damID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM dam_status_history WHERE dam_id = ?`), damID)
	return n, err
}

// LatestForDams returns the current row of each dam in ids that has one.
func (r *StatusRepo) LatestForDams(ctx context.Context, ids []string) (map[string]domain.DamStatus, error) {
	out := make(map[string]domain.DamStatus, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+statusColumns+` FROM dam_status WHERE dam_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build status query: %w", err)
	}
	rows, err := list[domain.DamStatus](ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	for _, st := range rows {
		out[st.DamID] = st
	}
	return out, nil
}
