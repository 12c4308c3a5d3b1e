package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/waxads/easy-grown/internal"
)

const pgUniqueViolation = "23505"

// PostgresStorage stores list columns as native TEXT[] arrays.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, fmt.Errorf("open: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("open: %w", err)
	}
	logger.Info("storage: postgres ready")
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- VegetableRepository ---
func (p *PostgresStorage) ListVegetables(ctx context.Context) ([]internal.Vegetable, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, COALESCE(name, ''), COALESCE(harvest_time, ''), water,
		COALESCE(sunlight, ''), COALESCE(months, ''), regions, COALESCE(image_url, ''),
		COALESCE(description, ''), steps, more_tips
		FROM vegetables ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query vegetables: %v", err)
		return nil, fmt.Errorf("list vegetables: query: %w", err)
	}
	defer rows.Close()

	vegs := []internal.Vegetable{}
	for rows.Next() {
		var v internal.Vegetable
		err := rows.Scan(&v.ID, &v.Name, &v.HarvestTime, &v.Water, &v.Sunlight, &v.Months, &v.Regions,
			&v.ImageURL, &v.Description, &v.Steps, &v.MoreTips)
		if err != nil {
			p.logger.Errorf("failed to scan vegetable: %v", err)
			return nil, fmt.Errorf("list vegetables: scan: %w", err)
		}
		v.Water, v.Regions, v.Steps, v.MoreTips = nonNil(v.Water), nonNil(v.Regions), nonNil(v.Steps), nonNil(v.MoreTips)
		vegs = append(vegs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vegetables: rows: %w", err)
	}
	return vegs, nil
}

func (p *PostgresStorage) CreateVegetable(ctx context.Context, v *internal.Vegetable) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `INSERT INTO vegetables
		(name, harvest_time, water, sunlight, months, regions, image_url, description, steps, more_tips)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		v.Name, v.HarvestTime, nonNil(v.Water), v.Sunlight, v.Months, nonNil(v.Regions), v.ImageURL, v.Description,
		nonNil(v.Steps), nonNil(v.MoreTips)).Scan(&id)
	if err != nil {
		p.logger.Errorf("failed to insert vegetable: %v", err)
		return -1, fmt.Errorf("create vegetable: insert: %w", err)
	}
	v.ID = id
	return id, nil
}

func (p *PostgresStorage) DeleteVegetable(ctx context.Context, id int64) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM vegetables WHERE id = $1`, id); err != nil {
		p.logger.Errorf("failed to delete vegetable %d: %v", id, err)
		return fmt.Errorf("delete vegetable: %w", err)
	}
	return nil
}

// --- PlantingLogRepository ---
func (p *PostgresStorage) ListPlantingLogs(ctx context.Context, userEmail string) ([]internal.PlantingLog, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_email, COALESCE(vegetable_id, 0), COALESCE(vegetable_name, ''),
		COALESCE(status, ''), COALESCE(planted_date, ''), COALESCE(expected_date, ''), COALESCE(location, ''),
		COALESCE(notes, ''), COALESCE(watering_interval_days, 0), COALESCE(last_watered_date, '')
		FROM planting_log WHERE user_email = $1 ORDER BY id`, userEmail)
	if err != nil {
		p.logger.Errorf("failed to query planting logs: %v", err)
		return nil, fmt.Errorf("list planting logs: query: %w", err)
	}
	defer rows.Close()

	logs := []internal.PlantingLog{}
	for rows.Next() {
		var l internal.PlantingLog
		err := rows.Scan(&l.ID, &l.UserEmail, &l.VegetableID, &l.VegetableName, &l.Status, &l.PlantedDate,
			&l.ExpectedDate, &l.Location, &l.Notes, &l.WateringIntervalDays, &l.LastWateredDate)
		if err != nil {
			p.logger.Errorf("failed to scan planting log: %v", err)
			return nil, fmt.Errorf("list planting logs: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planting logs: rows: %w", err)
	}
	return logs, nil
}

func (p *PostgresStorage) CreatePlantingLog(ctx context.Context, l *internal.PlantingLog) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `INSERT INTO planting_log
		(user_email, vegetable_id, vegetable_name, status, planted_date, expected_date, location, notes, watering_interval_days, last_watered_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		l.UserEmail, l.VegetableID, l.VegetableName, l.Status, l.PlantedDate, l.ExpectedDate, l.Location, l.Notes,
		l.WateringIntervalDays, l.LastWateredDate).Scan(&id)
	if err != nil {
		p.logger.Errorf("failed to insert planting log: %v", err)
		return -1, fmt.Errorf("create planting log: insert: %w", err)
	}
	l.ID = id
	return id, nil
}

func (p *PostgresStorage) UpdatePlantingStatus(ctx context.Context, id int64, status string) error {
	if _, err := p.pool.Exec(ctx, `UPDATE planting_log SET status = $1 WHERE id = $2`, status, id); err != nil {
		p.logger.Errorf("failed to update status of planting log %d: %v", id, err)
		return fmt.Errorf("update planting status: %w", err)
	}
	return nil
}

func (p *PostgresStorage) UpdateLastWatered(ctx context.Context, id int64, date string) error {
	if _, err := p.pool.Exec(ctx, `UPDATE planting_log SET last_watered_date = $1 WHERE id = $2`, date, id); err != nil {
		p.logger.Errorf("failed to update last watered date of planting log %d: %v", id, err)
		return fmt.Errorf("update last watered: %w", err)
	}
	return nil
}

// --- UserRepository ---
func (p *PostgresStorage) CreateUser(ctx context.Context, u *internal.User) (int64, error) {
	var id int64
	err := p.pool.QueryRow(ctx, `INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return -1, internal.ErrDuplicateEmail
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return -1, fmt.Errorf("create user: insert: %w", err)
	}
	u.ID = id
	return id, nil
}

func (p *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	var u internal.User
	err := p.pool.QueryRow(ctx, `SELECT id, COALESCE(name, ''), email, password, role FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, internal.ErrNotFound
	}
	if err != nil {
		p.logger.Errorf("failed to query user: %v", err)
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
