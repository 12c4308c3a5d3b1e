package api

import (
	"context"
	"io"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/auth"
	"github.com/waxads/easy-grown/internal/storage"
)

// Uploader persists one uploaded file and returns its public path.
type Uploader interface {
	Save(originalName string, r io.Reader) (string, error)
}

type App interface {
	Logger() internal.Logger
	VegetableRepo() storage.VegetableRepository
	PlantingRepo() storage.PlantingLogRepository
	UserRepo() storage.UserRepository
	Uploads() Uploader
	Passwords() auth.Hasher
	Ping(ctx context.Context) error
}

// Application wires one Store into every repository role.
type Application struct {
	logger  internal.Logger
	store   storage.Store
	uploads Uploader
	hasher  auth.Hasher
}

func NewApplication(logger internal.Logger, store storage.Store, uploads Uploader, hasher auth.Hasher) *Application {
	return &Application{logger: logger, store: store, uploads: uploads, hasher: hasher}
}

func (a *Application) Logger() internal.Logger                     { return a.logger }
func (a *Application) VegetableRepo() storage.VegetableRepository  { return a.store }
func (a *Application) PlantingRepo() storage.PlantingLogRepository { return a.store }
func (a *Application) UserRepo() storage.UserRepository            { return a.store }
func (a *Application) Uploads() Uploader                           { return a.uploads }
func (a *Application) Passwords() auth.Hasher                      { return a.hasher }
func (a *Application) Ping(ctx context.Context) error              { return a.store.Ping(ctx) }

var _ App = (*Application)(nil)
