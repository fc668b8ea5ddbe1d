// Package initializer builds the application's dependency graph: logger,
// database connection, and repositories.
package initializer

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/farai/schoolledger/infra"
	expenseinfra "github.com/farai/schoolledger/infra/repository/expense"
	paymentinfra "github.com/farai/schoolledger/infra/repository/payment"
	studentinfra "github.com/farai/schoolledger/infra/repository/student"
	"github.com/farai/schoolledger/pkg/config"
	expenserepo "github.com/farai/schoolledger/pkg/repository/expense"
	paymentrepo "github.com/farai/schoolledger/pkg/repository/payment"
	studentrepo "github.com/farai/schoolledger/pkg/repository/student"
)

// Deps carries the wired dependencies handed to the services and handlers.
type Deps struct {
	Config   *config.App
	Logger   *slog.Logger
	DB       *gorm.DB
	Students studentrepo.Repository
	Payments paymentrepo.Repository
	Expenses expenserepo.Repository
}

// InitializeDependencies wires the logger, database, and repositories.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Deps{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Students: studentinfra.New(db),
		Payments: paymentinfra.New(db),
		Expenses: expenseinfra.New(db),
	}, nil
}
