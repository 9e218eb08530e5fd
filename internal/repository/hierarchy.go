package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

type StateRepo struct{ db *sqlx.DB }

func (r *StateRepo) Create(ctx context.Context, s *domain.State) error {
	if s.ID == "" {
		s.ID = newID()
	}
	s.CreatedAt, s.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO states (id, name, created_at, updated_at)
		VALUES (:id, :name, :created_at, :updated_at)`, s)
}

func (r *StateRepo) Get(ctx context.Context, id string) (*domain.State, error) {
	return get[domain.State](ctx, r.db, `SELECT * FROM states WHERE id = ?`, id)
}

func (r *StateRepo) List(ctx context.Context) ([]domain.State, error) {
	return list[domain.State](ctx, r.db, `SELECT * FROM states ORDER BY name`)
}

func (r *StateRepo) Rename(ctx context.Context, id, name string) error {
	return execOne(ctx, r.db, `UPDATE states SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id)
}

type RiverRepo struct{ db *sqlx.DB }

func (r *RiverRepo) Create(ctx context.Context, rv *domain.River) error {
	if rv.ID == "" {
		rv.ID = newID()
	}
	rv.CreatedAt, rv.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO rivers (id, name, state_id, created_at, updated_at)
		VALUES (:id, :name, :state_id, :created_at, :updated_at)`, rv)
}

func (r *RiverRepo) Get(ctx context.Context, id string) (*domain.River, error) {
	return get[domain.River](ctx, r.db, `SELECT * FROM rivers WHERE id = ?`, id)
}

func (r *RiverRepo) ListByState(ctx context.Context, stateID string) ([]domain.River, error) {
	return list[domain.River](ctx, r.db, `SELECT * FROM rivers WHERE state_id = ? ORDER BY name`, stateID)
}

func (r *RiverRepo) Rename(ctx context.Context, id, name string) error {
	return execOne(ctx, r.db, `UPDATE rivers SET name = ?, updated_at = ? WHERE id = ?`, name, now(), id)
}

const damColumns = `id, name, state_id, state_name, river_id, river_name, coordinates, dam_type,
	construction_year, operator, max_storage, live_storage, dead_storage, catchment_area,
	surface_area, height, length, created_at, updated_at`

type DamRepo struct{ db *sqlx.DB }

func (r *DamRepo) Create(ctx context.Context, d *domain.Dam) error {
	if d.ID == "" {
		d.ID = newID()
	}
	d.CreatedAt, d.UpdatedAt = now(), now()
	return namedExec(ctx, r.db, `INSERT INTO dams (`+damColumns+`) VALUES (
		:id, :name, :state_id, :state_name, :river_id, :river_name, :coordinates, :dam_type,
		:construction_year, :operator, :max_storage, :live_storage, :dead_storage, :catchment_area,
		:surface_area, :height, :length, :created_at, :updated_at)`, d)
}

// Update overwrites every mutable column of d.
func (r *DamRepo) Update(ctx context.Context, d *domain.Dam) error {
	d.UpdatedAt = now()
	return namedExecOne(ctx, r.db, `UPDATE dams SET
		name = :name, state_id = :state_id, state_name = :state_name, river_id = :river_id,
		river_name = :river_name, coordinates = :coordinates, dam_type = :dam_type,
		construction_year = :construction_year, operator = :operator, max_storage = :max_storage,
		live_storage = :live_storage, dead_storage = :dead_storage, catchment_area = :catchment_area,
		surface_area = :surface_area, height = :height, length = :length, updated_at = :updated_at
		WHERE id = :id`, d)
}

func (r *DamRepo) Get(ctx context.Context, id string) (*domain.Dam, error) {
	return get[domain.Dam](ctx, r.db, `SELECT `+damColumns+` FROM dams WHERE id = ?`, id)
}

func (r *DamRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM dams WHERE id = ?`), id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DamRepo) List(ctx context.Context) ([]domain.Dam, error) {
	return list[domain.Dam](ctx, r.db, `SELECT `+damColumns+` FROM dams ORDER BY name`)
}

func (r *DamRepo) ListByRiver(ctx context.Context, riverID string) ([]domain.Dam, error) {
	return list[domain.Dam](ctx, r.db, `SELECT `+damColumns+` FROM dams WHERE river_id = ? ORDER BY name`, riverID)
}

func (r *DamRepo) ListByState(ctx context.Context, stateID string) ([]domain.Dam, error) {
	return list[domain.Dam](ctx, r.db, `SELECT `+damColumns+` FROM dams WHERE state_id = ? ORDER BY name`, stateID)
}

// ListByIDs returns the dams among ids that exist, ordered by name.
func (r *DamRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Dam, error) {
	if len(ids) == 0 {
		return []domain.Dam{}, nil
	}
	q, args, err := sqlx.In(`SELECT `+damColumns+` FROM dams WHERE id IN (?) ORDER BY name`, ids)
	if err != nil {
		return nil, fmt.Errorf("build dam id query: %w", err)
	}
	return list[domain.Dam](ctx, r.db, q, args...)
}

// RenameState refreshes the cached state name on every dam of the state.
func (r *DamRepo) RenameState(ctx context.Context, stateID, name string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE dams SET state_name = ?, updated_at = ? WHERE state_id = ?`),
		name, now(), stateID)
	return err
}

// RenameRiver refreshes the cached river name on every dam of the river.
func (r *DamRepo) RenameRiver(ctx context.Context, riverID, name string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE dams SET river_name = ?, updated_at = ? WHERE river_id = ?`),
		name, now(), riverID)
	return err
}
