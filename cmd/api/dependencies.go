package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/citydata/citydata-api/internal/domain/auth"
	"github.com/citydata/citydata-api/internal/domain/city"
	"github.com/citydata/citydata-api/internal/domain/compare"
	"github.com/citydata/citydata-api/internal/domain/investment"
	"github.com/citydata/citydata-api/internal/domain/usage"
	"github.com/citydata/citydata-api/pkg/config"
	"github.com/citydata/citydata-api/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// auth validates keys over database/sql while everything else
	// shares the pgx pool
	sqlDB *sql.DB

	// Repositories
	AuthRepo       auth.Repository
	CityRepo       city.Repository
	InvestmentRepo investment.Repository
	CompareRepo    compare.Repository
	UsageRepo      usage.Repository

	// Services
	AuthService       *auth.Service
	CityService       *city.Service
	InvestmentService *investment.Service
	CompareService    *compare.Service

	// Handlers
	CityHandler       *city.Handler
	InvestmentHandler *investment.Handler
	CompareHandler    *compare.Handler
	UsageHandler      *usage.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() error {
	sqlDB, err := sql.Open("pgx", d.Config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open sql DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping sql DB: %w", err)
	}

	d.sqlDB = sqlDB
	d.AuthRepo = auth.NewPostgresRepository(sqlDB)
	d.CityRepo = city.NewRepository(d.DB.Pool, d.Logger)
	d.InvestmentRepo = investment.NewRepository(d.DB.Pool, d.Logger)
	d.CompareRepo = compare.NewRepository(d.DB.Pool, d.Logger)
	d.UsageRepo = usage.NewRepository(d.DB.Pool, d.Logger)

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() {
	d.AuthService = auth.NewService(d.AuthRepo, d.Logger)
	d.CityService = city.NewService(d.CityRepo, d.Logger)
	d.InvestmentService = investment.NewService(d.InvestmentRepo, d.Logger)
	d.CompareService = compare.NewService(d.CompareRepo, d.Logger)

	d.Logger.Info("services initialized")
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() {
	d.CityHandler = city.NewHandler(d.CityService, d.Logger)
	d.InvestmentHandler = investment.NewHandler(d.InvestmentService, d.Logger)
	d.CompareHandler = compare.NewHandler(d.CompareService, d.Logger)
	d.UsageHandler = usage.NewHandler(d.UsageRepo, d.Logger)

	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.sqlDB != nil {
		d.sqlDB.Close()
	}
	d.Logger.Info("cleanup completed")
}
