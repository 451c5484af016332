// Package bootstrap loads configuration and opens the connections shared by
// the CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"remotcyberhelp/internal/infrastructure/config"
	"remotcyberhelp/internal/infrastructure/database"
	"remotcyberhelp/internal/infrastructure/mongodb"
	"remotcyberhelp/internal/shared/biztime"
	"remotcyberhelp/internal/shared/logger"
)

// Runtime is what most commands need: config, a logger and the SQL database,
// plus MongoDB when storage.backend=mongo.
type Runtime struct {
	Config  *config.Config
	Logger  logger.Interface
	DB      *gorm.DB
	Mongo   *mongo.Client
	MongoDB *mongo.Database
}

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flag string) string {
	if v := strings.TrimSpace(os.Getenv("ENV")); v != "" {
		return v
	}
	return flag
}

// LoadConfig reads configuration and initializes the logger and business timezone.
func LoadConfig(env string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	debug := cfg.Server.Mode == "debug" || strings.EqualFold(cfg.Logger.Level, "debug")
	if err := logger.Init(&cfg.Logger, debug); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Business.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Open loads config and connects to the databases.
func Open(ctx context.Context, env string) (*Runtime, error) {
	cfg, log, err := LoadConfig(env)
	if err != nil {
		return nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	rt := &Runtime{Config: cfg, Logger: log, DB: database.Get()}

	if cfg.Storage.Backend == "mongo" {
		client, mdb, err := mongodb.Connect(ctx, &cfg.Mongo)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		rt.Mongo = client
		rt.MongoDB = mdb
		log.Infow("mongodb connection established", "database", cfg.Mongo.Database)
	}
	return rt, nil
}

func (r *Runtime) Close(ctx context.Context) {
	if r.Mongo != nil {
		if err := r.Mongo.Disconnect(ctx); err != nil {
			r.Logger.Warnw("failed to disconnect mongodb", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		r.Logger.Warnw("failed to close database", "error", err)
	}
}
