package storage

import (
	"context"
	"fmt"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/config"
)

// Open returns the Store selected by cfg.DBType. SQL backends migrate on open.
func Open(ctx context.Context, cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendPostgres:
		s, err := NewPostgresStorage(ctx, cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendMemory:
		logger.Warn("storage: using in-memory backend, data is lost on exit")
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
