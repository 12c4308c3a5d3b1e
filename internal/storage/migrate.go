package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaVersion is the current schema version of both backends.
const SchemaVersion = 1

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS vegetables (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		harvest_time TEXT,
		water TEXT,
		sunlight TEXT,
		months TEXT,
		regions TEXT,
		image_url TEXT,
		description TEXT,
		steps TEXT,
		more_tips TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS planting_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_email TEXT NOT NULL,
		vegetable_id INTEGER,
		vegetable_name TEXT,
		status TEXT,
		planted_date TEXT,
		expected_date TEXT,
		location TEXT,
		notes TEXT,
		watering_interval_days INTEGER,
		last_watered_date TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_planting_log_user_email ON planting_log(user_email);`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user'
	);`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS vegetables (
		id BIGSERIAL PRIMARY KEY,
		name TEXT,
		harvest_time TEXT,
		water TEXT[] NOT NULL DEFAULT '{}',
		sunlight TEXT,
		months TEXT,
		regions TEXT[] NOT NULL DEFAULT '{}',
		image_url TEXT,
		description TEXT,
		steps TEXT[] NOT NULL DEFAULT '{}',
		more_tips TEXT[] NOT NULL DEFAULT '{}'
	);`,
	`CREATE TABLE IF NOT EXISTS planting_log (
		id BIGSERIAL PRIMARY KEY,
		user_email TEXT NOT NULL,
		vegetable_id BIGINT,
		vegetable_name TEXT,
		status TEXT,
		planted_date TEXT,
		expected_date TEXT,
		location TEXT,
		notes TEXT,
		watering_interval_days INTEGER,
		last_watered_date TEXT
	);`,
	`CREATE INDEX IF NOT EXISTS idx_planting_log_user_email ON planting_log(user_email);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user'
	);`,
}

// MigrateSQLite brings a SQLite database up to SchemaVersion.
func MigrateSQLite(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range sqliteSchema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: statement %d: %w", i, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion); err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}
	return nil
}

// MigratePostgres brings a PostgreSQL database up to SchemaVersion.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return fmt.Errorf("migrate: pool is nil")
	}

	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range postgresSchema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: statement %d: %w", i, err)
			}
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, SchemaVersion); err != nil {
			return fmt.Errorf("migrate: record schema version: %w", err)
		}
		return nil
	})
}
