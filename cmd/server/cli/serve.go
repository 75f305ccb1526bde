package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/router"
	"github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/view"
)

// NewServeCommand starts the web server.
func NewServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply the schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	lg := logger.New(cfg.Log)
	defer lg.Close()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.Events.Enabled {
		pub = service.AMQPPublisher{URL: cfg.Events.URL}
	}
	dir := service.NewDirectory(db, service.Options{
		Driver:    cfg.DBDriver,
		Publisher: pub,
		Logger:    lg.Logger,
	})

	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	rlCfg := config.LoadRateLimitConfig()
	rdb := config.NewRedisClient(ctx)
	if rdb == nil && rlCfg.Enabled {
		lg.Printf("redis unavailable; form submissions are not rate limited")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug()
	e.Renderer = renderer
	e.HTTPErrorHandler = router.ErrorHandler(lg.Logger)
	e.Use(echomw.Recover())
	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{Output: lg.Writer()}))
	e.Use(middleware.Flash(cfg.FlashSecret))

	router.RegisterRoutes(e, db)
	router.RegisterSite(e, handler.NewSiteHandler(dir, lg.Logger), middleware.NewTokenBucket(rlCfg, rdb))

	errCh := make(chan error, 1)
	go func() {
		lg.Printf("listening on :%s (env=%s, db=%s)", cfg.Port, cfg.Env, cfg.DBDriver)
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openDB(cfg config.Config) (*sql.DB, error) {
	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
		Path:   cfg.DBPath,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}
