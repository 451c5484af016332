package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"remotcyberhelp/internal/infrastructure/migration"
	httpRouter "remotcyberhelp/internal/interfaces/http"
	"remotcyberhelp/internal/interfaces/cli/bootstrap"
	"remotcyberhelp/internal/shared/logger"
	"remotcyberhelp/internal/shared/version"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the RemotCyberHelp API server. SIGINT or SIGTERM drains in-flight requests and exits cleanly.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env = bootstrap.ResolveEnv(env)

	rt, err := bootstrap.Open(cmd.Context(), env)
	if err != nil {
		return err
	}
	cfg := rt.Config
	log := rt.Logger
	cfg.Server.Mode = mapEnvToGinMode(env)

	log.Infow("starting server",
		"environment", cfg.Server.Environment,
		"version", version.String(),
		"storage", cfg.Storage.Backend,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cmd.Context(), rt, log); err != nil {
		rt.Close(context.Background())
		return err
	}

	router, err := httpRouter.NewRouter(rt.DB, rt.MongoDB, cfg, log)
	if err != nil {
		rt.Close(context.Background())
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()
	router.Start()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}
	router.Shutdown(ctx)
	rt.Close(ctx)

	if runErr != nil {
		return runErr
	}
	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(ctx context.Context, rt *bootstrap.Runtime, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	m, err := migration.NewManager(rt.DB, log)
	if err != nil {
		return err
	}
	// No m.Close here: it would close the shared connection.

	if autoMigrate {
		if rt.Config.Server.IsProduction() {
			log.Warnw("auto-migration is enabled in production")
		}
		applied, err := m.Up(ctx)
		if err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed", "applied", applied)
		return nil
	}

	statuses, err := m.Status(ctx)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	pending := 0
	for _, s := range statuses {
		if !s.Applied {
			pending++
		}
	}
	if pending > 0 {
		log.Warnw("database has pending migrations, run 'migrate up'", "pending", pending)
	}
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
