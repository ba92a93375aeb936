package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Route groups whose dependency is nil are not registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Rates endpoints
	if cfg.Rates != nil {
		ratesController := NewRatesController(cfg.Rates, cfg.Refresher)
		api.GET("/currencies", ratesController.Currencies)
		api.GET("/rates/:base", ratesController.Latest)
		api.POST("/rates/:base/refresh", ratesController.Refresh)
	}

	// Conversion and pair endpoints
	if cfg.Converter != nil {
		convertController := NewConvertController(cfg.Converter)
		api.GET("/convert", convertController.Convert)

		pairController := NewPairController(cfg.Converter)
		api.GET("/pair", pairController.GetPair)
		api.PUT("/pair", pairController.SetPair)
		api.POST("/pair/swap", pairController.SwapPair)
	}

	// Favourites endpoints
	if cfg.Favourites != nil {
		favouritesController := NewFavouritesController(cfg.Favourites)
		api.GET("/favorites", favouritesController.ListFavourites)
		api.POST("/favorites", favouritesController.AddFavourite)
		api.DELETE("/favorites", favouritesController.RemoveFavourite)
		api.POST("/favorites/toggle", favouritesController.ToggleFavourite)
	}

	// History endpoints
	if cfg.History != nil {
		historyController := NewHistoryController(cfg.History)
		api.GET("/history", historyController.ListHistory)
		api.DELETE("/history", historyController.ClearHistory)
	}

	// Settings endpoints
	if cfg.Settings != nil {
		settingsController := NewSettingsController(cfg.Settings, cfg.Session)
		api.GET("/settings", settingsController.ListSettings)
		api.GET("/settings/:key", settingsController.GetSetting)
		api.PUT("/settings/:key", settingsController.UpdateSetting)
	}

	return router
}
