package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/smartrate/internal/config"
	http_controllers "github.com/mrlokans/smartrate/internal/http"
	"github.com/mrlokans/smartrate/internal/scheduler"
	"github.com/mrlokans/smartrate/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting SmartRate v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Refreshes go through the task queue when enabled, inline otherwise
	var refresher http_controllers.RefreshEnqueuer = scheduler.DirectRefresher{Fetcher: app.Rates}
	var queue *tasks.Refresher
	if cfg.Tasks.Enabled {
		queue, err = tasks.NewRefresher(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}, app.Rates)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		queue.Start(context.Background())
		refresher = queue
	}

	var warmup *scheduler.WarmupScheduler
	if cfg.Warmup.Enabled {
		warmup = scheduler.NewWarmupScheduler(cfg.Warmup.Schedule, app.Favourites, app.Converter, refresher)
		if err := warmup.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start warm-up scheduler: %v", err)
			warmup = nil
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:   app.Database,
		Version:    version,
		Rates:      app.Rates,
		Session:    app.Rates,
		Refresher:  refresher,
		Converter:  app.Converter,
		Favourites: app.Favourites,
		History:    app.History,
		Settings:   app.Settings,
	})

	onShutdown := func(ctx context.Context) {
		if warmup != nil {
			warmup.Stop()
		}
		if queue != nil {
			queue.Shutdown(ctx)
		}
	}

	Serve(router, cfg, onShutdown)
}
