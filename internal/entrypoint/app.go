package entrypoint

import (
	"fmt"
	"log"

	"github.com/mrlokans/smartrate/internal/config"
	"github.com/mrlokans/smartrate/internal/converter"
	"github.com/mrlokans/smartrate/internal/database"
	"github.com/mrlokans/smartrate/internal/database/currencylist"
	"github.com/mrlokans/smartrate/internal/database/favourites"
	"github.com/mrlokans/smartrate/internal/database/history"
	"github.com/mrlokans/smartrate/internal/database/kv"
	"github.com/mrlokans/smartrate/internal/database/ratecache"
	"github.com/mrlokans/smartrate/internal/database/settings"
	"github.com/mrlokans/smartrate/internal/exchangerate"
	"github.com/mrlokans/smartrate/internal/rates"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Config     *config.Config
	Database   *database.Database
	Settings   *settings.Repository
	Favourites *favourites.Repository
	History    *history.Repository
	Rates      *rates.Manager
	Converter  *converter.Service
}

// NewApp opens the database and builds the service graph for cfg.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store := kv.NewRepository(db.DB)
	settingsRepo := settings.NewRepository(store)
	favouritesRepo := favourites.NewRepository(store)
	historyRepo := history.NewRepositoryWithLimit(store, cfg.History.Limit)

	if cfg.Provider.DefaultAPIKey == "" {
		log.Printf("WARNING: no default API key configured. Rate fetches will fail until 'userApiKey' is set.")
	}

	manager := rates.NewManager(
		rates.Deps{
			Provider:      exchangerate.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout),
			Settings:      settingsRepo,
			DefaultAPIKey: cfg.Provider.DefaultAPIKey,
			RateCache:     ratecache.NewRepository(store),
			CurrencyList:  currencylist.NewRepository(store),
		},
		rates.Options{
			RatesTTL:        cfg.Cache.RatesTTL,
			CurrencyListTTL: cfg.Cache.CurrencyListTTL,
		},
	)

	return &App{
		Config:     cfg,
		Database:   db,
		Settings:   settingsRepo,
		Favourites: favouritesRepo,
		History:    historyRepo,
		Rates:      manager,
		Converter:  converter.NewService(manager, settingsRepo, historyRepo),
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.Database.Close()
}
