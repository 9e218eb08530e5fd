package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

const usageColumns = `u.id, u.dam_id, u.irrigation, u.drinking, u.industrial, u.hydropower,
	u.evaporation_loss, u.environmental_flow, u.farming_support, u.created_at, u.updated_at`

type UsageRepo struct{ db *sqlx.DB }

func (r *UsageRepo) Create(ctx context.Context, u *domain.WaterUsage) error {
	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt, u.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO water_usage (id, dam_id, irrigation, drinking, industrial,
		hydropower, evaporation_loss, environmental_flow, farming_support, created_at, updated_at)
		VALUES (:id, :dam_id, :irrigation, :drinking, :industrial, :hydropower, :evaporation_loss,
		:environmental_flow, :farming_support, :created_at, :updated_at)`, u)
}

func (r *UsageRepo) Get(ctx context.Context, id string) (*domain.WaterUsage, error) {
	return get[domain.WaterUsage](ctx, r.db, `SELECT `+usageColumns+` FROM water_usage u WHERE u.id = ?`, id)
}

func (r *UsageRepo) GetByDam(ctx context.Context, damID string) (*domain.WaterUsage, error) {
	return get[domain.WaterUsage](ctx, r.db, `SELECT `+usageColumns+` FROM water_usage u WHERE u.dam_id = ?`, damID)
}

func (r *UsageRepo) List(ctx context.Context) ([]domain.WaterUsage, error) {
	return list[domain.WaterUsage](ctx, r.db, `SELECT `+usageColumns+` FROM water_usage u ORDER BY u.created_at DESC`)
}

// ListByDamIDs returns the usage rows keyed by dam for the given dams.
func (r *UsageRepo) ListByDamIDs(ctx context.Context, ids []string) (map[string]domain.WaterUsage, error) {
	out := make(map[string]domain.WaterUsage, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In(`SELECT `+usageColumns+` FROM water_usage u WHERE u.dam_id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	rows, err := list[domain.WaterUsage](ctx, r.db, q, args...)
	if err != nil {
		return nil, err
	}
	for _, u := range rows {
		out[u.DamID] = u
	}
	return out, nil
}

// ListByStateName returns usage of dams whose cached state name matches.
func (r *UsageRepo) ListByStateName(ctx context.Context, stateName string) ([]domain.WaterUsage, error) {
	return list[domain.WaterUsage](ctx, r.db, `SELECT `+usageColumns+` FROM water_usage u
		JOIN dams d ON d.id = u.dam_id WHERE d.state_name = ?`, stateName)
}

func (r *UsageRepo) ListByRiver(ctx context.Context, riverID string) ([]domain.WaterUsage, error) {
	return list[domain.WaterUsage](ctx, r.db, `SELECT `+usageColumns+` FROM water_usage u
		JOIN dams d ON d.id = u.dam_id WHERE d.river_id = ?`, riverID)
}

func (r *UsageRepo) Update(ctx context.Context, u *domain.WaterUsage) error {
	u.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE water_usage SET dam_id = :dam_id, irrigation = :irrigation,
		drinking = :drinking, industrial = :industrial, hydropower = :hydropower,
		evaporation_loss = :evaporation_loss, environmental_flow = :environmental_flow,
		farming_support = :farming_support, updated_at = :updated_at WHERE id = :id`, u)
}

func (r *UsageRepo) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.db, `DELETE FROM water_usage WHERE id = ?`, id)
}
