package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the store for driver ("pgx" or "sqlite3") and applies the schema.
func Connect(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// sqlite serialises writers; one connection also keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables and indexes. The DDL sticks to types that
// both PostgreSQL and SQLite accept.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS states (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rivers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		state_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (state_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS dams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		state_id TEXT NOT NULL DEFAULT '',
		state_name TEXT NOT NULL DEFAULT '',
		river_id TEXT NOT NULL DEFAULT '',
		river_name TEXT NOT NULL DEFAULT '',
		coordinates TEXT NOT NULL DEFAULT '',
		dam_type TEXT NOT NULL DEFAULT '',
		construction_year TEXT NOT NULL DEFAULT '',
		operator TEXT NOT NULL DEFAULT '',
		max_storage DOUBLE PRECISION,
		live_storage DOUBLE PRECISION,
		dead_storage DOUBLE PRECISION,
		catchment_area TEXT NOT NULL DEFAULT '',
		surface_area TEXT NOT NULL DEFAULT '',
		height TEXT NOT NULL DEFAULT '',
		length TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dams_river ON dams (river_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_dams_river_name ON dams (river_id, name) WHERE river_id <> ''`,
	`CREATE INDEX IF NOT EXISTS idx_dams_state ON dams (state_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dams_state_name ON dams (state_name)`,
	`CREATE TABLE IF NOT EXISTS dam_status (
		dam_id TEXT PRIMARY KEY,
		current_water_level DOUBLE PRECISION,
		level_unit TEXT NOT NULL,
		max_level DOUBLE PRECISION,
		min_level DOUBLE PRECISION,
		inflow_rate DOUBLE PRECISION,
		outflow_rate DOUBLE PRECISION,
		spillway_discharge DOUBLE PRECISION,
		gate_status TEXT NOT NULL,
		source TEXT NOT NULL,
		sensor_id TEXT NOT NULL DEFAULT '',
		power_status TEXT NOT NULL,
		is_active BOOLEAN,
		status TEXT NOT NULL DEFAULT '',
		last_sync_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS dam_status_history (
		id TEXT PRIMARY KEY,
		dam_id TEXT NOT NULL,
		current_water_level DOUBLE PRECISION,
		level_unit TEXT NOT NULL,
		max_level DOUBLE PRECISION,
		min_level DOUBLE PRECISION,
		inflow_rate DOUBLE PRECISION,
		outflow_rate DOUBLE PRECISION,
		spillway_discharge DOUBLE PRECISION,
		gate_status TEXT NOT NULL,
		source TEXT NOT NULL,
		sensor_id TEXT NOT NULL DEFAULT '',
		power_status TEXT NOT NULL,
		is_active BOOLEAN,
		status TEXT NOT NULL DEFAULT '',
		last_sync_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_dam_created ON dam_status_history (dam_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS safety (
		id TEXT PRIMARY KEY,
		dam_id TEXT NOT NULL UNIQUE,
		flood_risk_level TEXT NOT NULL,
		seepage_report TEXT NOT NULL DEFAULT '',
		structural_health TEXT NOT NULL,
		earthquake_zone TEXT NOT NULL DEFAULT '',
		maintenance TEXT NOT NULL,
		emergency_contact TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sensors (
		id TEXT PRIMARY KEY,
		dam_id TEXT NOT NULL,
		sensor_id TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		battery_status TEXT NOT NULL,
		last_sync TIMESTAMP NOT NULL,
		last_reading DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sensors_dam ON sensors (dam_id)`,
	`CREATE TABLE IF NOT EXISTS supporting_info (
		id TEXT PRIMARY KEY,
		dam_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		danger_level TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_supporting_info_dam ON supporting_info (dam_id)`,
	`CREATE TABLE IF NOT EXISTS water_usage (
		id TEXT PRIMARY KEY,
		dam_id TEXT NOT NULL UNIQUE,
		irrigation DOUBLE PRECISION NOT NULL DEFAULT 0,
		drinking DOUBLE PRECISION NOT NULL DEFAULT 0,
		industrial DOUBLE PRECISION NOT NULL DEFAULT 0,
		hydropower DOUBLE PRECISION NOT NULL DEFAULT 0,
		evaporation_loss DOUBLE PRECISION NOT NULL DEFAULT 0,
		environmental_flow DOUBLE PRECISION NOT NULL DEFAULT 0,
		farming_support DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS features (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		admin_only BOOLEAN NOT NULL DEFAULT FALSE,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		mobile TEXT NOT NULL,
		place TEXT NOT NULL,
		state TEXT NOT NULL,
		role TEXT NOT NULL,
		profile_image TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_saved_dams (
		user_id TEXT NOT NULL,
		dam_id TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, dam_id)
	)`,
}
