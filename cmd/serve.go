package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"catalog/db"
	"catalog/repository"
	"catalog/routes"
	"catalog/views"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
}

func serve(ctx context.Context, rt *runtime) error {
	log := rt.logger

	conn, err := db.Open(rt.cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			log.Warnf("Failed to close database: %v", err)
		}
	}()
	if err := db.Migrate(conn); err != nil {
		return err
	}

	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	app := routes.NewApp(routes.NewHandler(routes.HandlerConfig{
		AppName:    rt.cfg.AppName,
		Products:   repository.NewProductRepository(conn, log),
		Categories: repository.NewCategoryRepository(conn, log),
		Views:      renderer,
		Ping:       pinger(conn),
		Logger:     log,
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Listening on %s", rt.cfg.Addr)
		return app.Listen(rt.cfg.Addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func pinger(conn *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
