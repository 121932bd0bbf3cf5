// Package initializer builds the application dependency graph at startup:
// logger, database connection, schema migration and the unit of work.
package initializer

import (
	"github.com/finsighthq/finsight/infra"
	infrarepo "github.com/finsighthq/finsight/infra/repository"
	"github.com/finsighthq/finsight/pkg/app"
	"github.com/finsighthq/finsight/pkg/config"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return nil, err
	}

	err = db.AutoMigrate(
		&infrarepo.Transaction{},
		&infrarepo.Project{},
		&infrarepo.Category{},
		&infrarepo.Allocation{},
	)
	if err != nil {
		logger.Error("failed to migrate schema", "error", err)
		return nil, err
	}

	deps.Uow = infrarepo.NewUoW(db)
	return deps, nil
}
