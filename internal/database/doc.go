// Package database provides the durable storage layer for the application.
//
// # Architecture
//
// All durable state lives in a single SQLite table of JSON-encoded values
// keyed by string (entities.KVEntry). The kv sub-package is the only writer
// of that table; every other sub-package is a stateless façade that
// serializes its own values through kv:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── kv/              # Generic get/set over string keys
//	├── settings/        # Scalar preferences with caller-supplied defaults
//	├── favourites/      # Favourite currency pairs (set semantics)
//	├── history/         # Conversion history (bounded, newest first)
//	├── ratecache/       # Rate tables per base currency
//	└── currencylist/    # Durable copy of the supported currency list
//
// # Usage
//
//	db, err := database.NewDatabase("./smartrate.db", logger.Silent)
//	store := kv.NewRepository(db.DB)
//
//	settingsRepo := settings.NewRepository(store)
//	favouritesRepo := favourites.NewRepository(store)
//
//	lang := settingsRepo.LoadSetting(ctx, entities.SettingKeyUserLanguage, "en")
//
// # Consistency
//
// There are no transactions across keys. Collection mutations read the
// whole collection, modify it and write it back, so two concurrent
// mutations of the same collection are last-write-wins.
package database
