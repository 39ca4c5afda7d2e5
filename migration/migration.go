package migration

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/danishayman/bobo-game-awards-sub000/internal/entity"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

// Migrate brings the schema to the latest version. Postgres uses the versioned SQL files, other
// drivers (local sqlite, mysql) fall back to gorm auto migration.
func Migrate(ctx context.Context) error {
	if xcontext.Configs(ctx).Database.Driver != "postgres" {
		xcontext.Logger(ctx).Infof("Auto migrate the %s database", xcontext.Configs(ctx).Database.Driver)
		return entity.MigrateTable(ctx)
	}

	m, err := newPostgresMigrate(ctx)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database schema at version %d (dirty=%v)", version, dirty)
	return nil
}

// Rollback reverts the last n versions of the postgres schema.
func Rollback(ctx context.Context, n int) error {
	if xcontext.Configs(ctx).Database.Driver != "postgres" {
		return fmt.Errorf("rollback is not supported for driver %s", xcontext.Configs(ctx).Database.Driver)
	}

	m, err := newPostgresMigrate(ctx)
	if err != nil {
		return err
	}

	if err := m.Steps(-n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func newPostgresMigrate(ctx context.Context) (*migrate.Migrate, error) {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(postgresFS, "postgres")
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, xcontext.Configs(ctx).Database.Database, driver)
}
