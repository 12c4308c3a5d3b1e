package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/waxads/easy-grown/internal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteStorage keeps all three collections in one SQLite file.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string, logger internal.Logger) (*SQLiteStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("open: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open: create db dir: %w", err)
	}

	dsn := "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: sql open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}
	if err := MigrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: %w", err)
	}

	logger.Infof("storage: sqlite ready at %s", path)
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- VegetableRepository ---
func (s *SQLiteStorage) ListVegetables(ctx context.Context) ([]internal.Vegetable, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, COALESCE(name, ''), COALESCE(harvest_time, ''), COALESCE(water, ''),
		COALESCE(sunlight, ''), COALESCE(months, ''), COALESCE(regions, ''), COALESCE(image_url, ''),
		COALESCE(description, ''), COALESCE(steps, ''), COALESCE(more_tips, '')
		FROM vegetables ORDER BY id`)
	if err != nil {
		s.logger.Errorf("failed to query vegetables: %v", err)
		return nil, fmt.Errorf("list vegetables: query: %w", err)
	}
	defer rows.Close()

	vegs := []internal.Vegetable{}
	for rows.Next() {
		var v internal.Vegetable
		var water, regions, steps, tips string
		err := rows.Scan(&v.ID, &v.Name, &v.HarvestTime, &water, &v.Sunlight, &v.Months, &regions,
			&v.ImageURL, &v.Description, &steps, &tips)
		if err != nil {
			s.logger.Errorf("failed to scan vegetable: %v", err)
			return nil, fmt.Errorf("list vegetables: scan: %w", err)
		}
		if v.Water, err = decodeList(water); err != nil {
			return nil, fmt.Errorf("list vegetables: id %d water: %w", v.ID, err)
		}
		if v.Regions, err = decodeList(regions); err != nil {
			return nil, fmt.Errorf("list vegetables: id %d regions: %w", v.ID, err)
		}
		if v.Steps, err = decodeList(steps); err != nil {
			return nil, fmt.Errorf("list vegetables: id %d steps: %w", v.ID, err)
		}
		if v.MoreTips, err = decodeList(tips); err != nil {
			return nil, fmt.Errorf("list vegetables: id %d more_tips: %w", v.ID, err)
		}
		vegs = append(vegs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vegetables: rows: %w", err)
	}
	return vegs, nil
}

func (s *SQLiteStorage) CreateVegetable(ctx context.Context, v *internal.Vegetable) (int64, error) {
	lists := make([]string, 4)
	for i, items := range [][]string{v.Water, v.Regions, v.Steps, v.MoreTips} {
		text, err := encodeList(items)
		if err != nil {
			return -1, fmt.Errorf("create vegetable: %w", err)
		}
		lists[i] = text
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO vegetables
		(name, harvest_time, water, sunlight, months, regions, image_url, description, steps, more_tips)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, v.HarvestTime, lists[0], v.Sunlight, v.Months, lists[1], v.ImageURL, v.Description, lists[2], lists[3])
	if err != nil {
		s.logger.Errorf("failed to insert vegetable: %v", err)
		return -1, fmt.Errorf("create vegetable: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("create vegetable: last insert id: %w", err)
	}
	v.ID = id
	return id, nil
}

func (s *SQLiteStorage) DeleteVegetable(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM vegetables WHERE id = ?`, id); err != nil {
		s.logger.Errorf("failed to delete vegetable %d: %v", id, err)
		return fmt.Errorf("delete vegetable: %w", err)
	}
	return nil
}

// --- PlantingLogRepository ---
func (s *SQLiteStorage) ListPlantingLogs(ctx context.Context, userEmail string) ([]internal.PlantingLog, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_email, COALESCE(vegetable_id, 0), COALESCE(vegetable_name, ''),
		COALESCE(status, ''), COALESCE(planted_date, ''), COALESCE(expected_date, ''), COALESCE(location, ''),
		COALESCE(notes, ''), COALESCE(watering_interval_days, 0), COALESCE(last_watered_date, '')
		FROM planting_log WHERE user_email = ? ORDER BY id`, userEmail)
	if err != nil {
		s.logger.Errorf("failed to query planting logs: %v", err)
		return nil, fmt.Errorf("list planting logs: query: %w", err)
	}
	defer rows.Close()

	logs := []internal.PlantingLog{}
	for rows.Next() {
		var l internal.PlantingLog
		err := rows.Scan(&l.ID, &l.UserEmail, &l.VegetableID, &l.VegetableName, &l.Status, &l.PlantedDate,
			&l.ExpectedDate, &l.Location, &l.Notes, &l.WateringIntervalDays, &l.LastWateredDate)
		if err != nil {
			s.logger.Errorf("failed to scan planting log: %v", err)
			return nil, fmt.Errorf("list planting logs: scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list planting logs: rows: %w", err)
	}
	return logs, nil
}

func (s *SQLiteStorage) CreatePlantingLog(ctx context.Context, l *internal.PlantingLog) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO planting_log
		(user_email, vegetable_id, vegetable_name, status, planted_date, expected_date, location, notes, watering_interval_days, last_watered_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.UserEmail, l.VegetableID, l.VegetableName, l.Status, l.PlantedDate, l.ExpectedDate, l.Location, l.Notes,
		l.WateringIntervalDays, l.LastWateredDate)
	if err != nil {
		s.logger.Errorf("failed to insert planting log: %v", err)
		return -1, fmt.Errorf("create planting log: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("create planting log: last insert id: %w", err)
	}
	l.ID = id
	return id, nil
}

func (s *SQLiteStorage) UpdatePlantingStatus(ctx context.Context, id int64, status string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE planting_log SET status = ? WHERE id = ?`, status, id); err != nil {
		s.logger.Errorf("failed to update status of planting log %d: %v", id, err)
		return fmt.Errorf("update planting status: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpdateLastWatered(ctx context.Context, id int64, date string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE planting_log SET last_watered_date = ? WHERE id = ?`, date, id); err != nil {
		s.logger.Errorf("failed to update last watered date of planting log %d: %v", id, err)
		return fmt.Errorf("update last watered: %w", err)
	}
	return nil
}

// --- UserRepository ---
func (s *SQLiteStorage) CreateUser(ctx context.Context, u *internal.User) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return -1, internal.ErrDuplicateEmail
		}
		s.logger.Errorf("failed to insert user: %v", err)
		return -1, fmt.Errorf("create user: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, fmt.Errorf("create user: last insert id: %w", err)
	}
	u.ID = id
	return id, nil
}

func (s *SQLiteStorage) GetUserByEmail(ctx context.Context, email string) (*internal.User, error) {
	var u internal.User
	err := s.db.QueryRowContext(ctx, `SELECT id, COALESCE(name, ''), email, password, role FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, internal.ErrNotFound
	}
	if err != nil {
		s.logger.Errorf("failed to query user: %v", err)
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}

// --- Compile-time assertions ---
var _ Store = (*SQLiteStorage)(nil)
