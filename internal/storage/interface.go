package storage

import (
	"context"

	"github.com/waxads/easy-grown/internal"
)

type VegetableRepository interface {
	ListVegetables(ctx context.Context) ([]internal.Vegetable, error)
	CreateVegetable(ctx context.Context, v *internal.Vegetable) (int64, error)
	// DeleteVegetable succeeds whether or not a row matched.
	DeleteVegetable(ctx context.Context, id int64) error
}

type PlantingLogRepository interface {
	ListPlantingLogs(ctx context.Context, userEmail string) ([]internal.PlantingLog, error)
	CreatePlantingLog(ctx context.Context, l *internal.PlantingLog) (int64, error)
	UpdatePlantingStatus(ctx context.Context, id int64, status string) error
	UpdateLastWatered(ctx context.Context, id int64, date string) error
}

type UserRepository interface {
	// CreateUser returns internal.ErrDuplicateEmail when the email is taken.
	CreateUser(ctx context.Context, u *internal.User) (int64, error)
	// GetUserByEmail returns internal.ErrNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*internal.User, error)
}

// Store is a complete backend for the API.
type Store interface {
	VegetableRepository
	PlantingLogRepository
	UserRepository
	Ping(ctx context.Context) error
	Close() error
}
