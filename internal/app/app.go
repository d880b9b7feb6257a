// Package app wires configuration, storage, and services into a single
// application core shared by cmd/pocketledger-server and tests.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jcallahan/pocketledger/internal/common"
	"github.com/jcallahan/pocketledger/internal/interfaces"
	"github.com/jcallahan/pocketledger/internal/services/account"
	"github.com/jcallahan/pocketledger/internal/services/catalog"
	"github.com/jcallahan/pocketledger/internal/services/plan"
	"github.com/jcallahan/pocketledger/internal/services/seed"
	"github.com/jcallahan/pocketledger/internal/services/summary"
	"github.com/jcallahan/pocketledger/internal/services/transaction"
	"github.com/jcallahan/pocketledger/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	Storage      interfaces.StorageManager
	Accounts     interfaces.AccountService
	Transactions interfaces.TransactionService
	Plans        interfaces.PlanService
	Catalog      interfaces.CatalogService
	Summaries    interfaces.SummaryService
	StartupTime  time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes storage and all services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Check provided path, POCKETLEDGER_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("POCKETLEDGER_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "pocketledger.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/pocketledger.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	accountService := account.NewService(storageManager, config.Ledger, logger)
	transactionService := transaction.NewService(storageManager, logger)
	planService := plan.NewService(storageManager, logger)
	catalogService := catalog.NewService(storageManager, logger)
	summaryService := summary.NewService(storageManager, config.Ledger, logger)

	a := &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		Accounts:     accountService,
		Transactions: transactionService,
		Plans:        planService,
		Catalog:      catalogService,
		Summaries:    summaryService,
		StartupTime:  startupStart,
	}

	if config.Ledger.SeedDemoData && !config.IsProduction() {
		seeder := seed.NewSeeder(storageManager, accountService, transactionService, planService, catalogService, logger)
		if err := seeder.Run(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("Demo data seeding failed")
		}
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// NewAppWithConfig builds an App from an already-loaded config. Used by tests
// to point storage at a temp directory without touching the filesystem
// resolution logic.
func NewAppWithConfig(config *common.Config, logger *common.Logger) (*App, error) {
	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	accountService := account.NewService(storageManager, config.Ledger, logger)
	transactionService := transaction.NewService(storageManager, logger)
	planService := plan.NewService(storageManager, logger)
	catalogService := catalog.NewService(storageManager, logger)
	summaryService := summary.NewService(storageManager, config.Ledger, logger)

	return &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		Accounts:     accountService,
		Transactions: transactionService,
		Plans:        planService,
		Catalog:      catalogService,
		Summaries:    summaryService,
		StartupTime:  time.Now(),
	}, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
