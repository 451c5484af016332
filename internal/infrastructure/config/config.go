package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "remotcyberhelp/internal/shared/config"
)

type Config struct {
	Server        sharedConfig.ServerConfig        `mapstructure:"server"`
	Database      sharedConfig.DatabaseConfig      `mapstructure:"database"`
	Mongo         sharedConfig.MongoConfig         `mapstructure:"mongo"`
	Storage       sharedConfig.StorageConfig       `mapstructure:"storage"`
	Redis         sharedConfig.RedisConfig         `mapstructure:"redis"`
	Logger        sharedConfig.LoggerConfig        `mapstructure:"logger"`
	Auth          sharedConfig.AuthConfig          `mapstructure:"auth"`
	Email         sharedConfig.EmailConfig         `mapstructure:"email"`
	Recaptcha     sharedConfig.RecaptchaConfig     `mapstructure:"recaptcha"`
	RateLimit     sharedConfig.RateLimitConfig     `mapstructure:"ratelimit"`
	BotProtection sharedConfig.BotProtectionConfig `mapstructure:"bot_protection"`
	Tickets       sharedConfig.TicketConfig        `mapstructure:"tickets"`
	Business      sharedConfig.BusinessConfig      `mapstructure:"business"`
	Events        sharedConfig.EventsConfig        `mapstructure:"events"`
	Scheduler     sharedConfig.SchedulerConfig     `mapstructure:"scheduler"`
	Metrics       sharedConfig.MetricsConfig       `mapstructure:"metrics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads .env (if present), then configs/config.yaml, then RCH_* environment variables.
func Load(env string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("RCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		viper.Set("server.environment", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Server.IsProduction() && config.Auth.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("auth.jwt.secret must be changed in production")
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.environment", "development")
	viper.SetDefault("server.version", "1.0.0")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	viper.SetDefault("server.shutdown_timeout_seconds", 30)

	viper.SetDefault("database.driver", "postgres")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.database", "remotcyberhelp")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 50)
	viper.SetDefault("database.conn_max_lifetime", 60)

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "remotcyberhelp")
	viper.SetDefault("mongo.timeout_seconds", 10)

	viper.SetDefault("storage.backend", "sql")
	viper.SetDefault("storage.counter", "store")

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("auth.jwt.secret", defaultJWTSecret)
	viper.SetDefault("auth.jwt.access_exp_days", 7)
	viper.SetDefault("auth.jwt.refresh_exp_days", 30)
	viper.SetDefault("auth.jwt.issuer", "remotcyberhelp")
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("auth.max_login_attempts", 5)
	viper.SetDefault("auth.lock_duration_minutes", 120)
	viper.SetDefault("auth.reset_code_minutes", 15)

	viper.SetDefault("email.provider", "noop")
	viper.SetDefault("email.smtp_host", "localhost")
	viper.SetDefault("email.smtp_port", 1025)
	viper.SetDefault("email.from_address", "support@remotcyberhelp.local")
	viper.SetDefault("email.from_name", "RemotCyberHelp")

	viper.SetDefault("recaptcha.enabled", false)
	viper.SetDefault("recaptcha.verify_url", "https://www.google.com/recaptcha/api/siteverify")
	viper.SetDefault("recaptcha.min_score", 0.5)
	viper.SetDefault("recaptcha.timeout_seconds", 5)
	viper.SetDefault("recaptcha.fail_open", true)

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.actions", map[string]any{
		"default":      map[string]any{"limit": 10, "window_seconds": 900},
		"ticket":       map[string]any{"limit": 5, "window_seconds": 900},
		"contact":      map[string]any{"limit": 5, "window_seconds": 900},
		"consultation": map[string]any{"limit": 3, "window_seconds": 3600},
		"government":   map[string]any{"limit": 5, "window_seconds": 3600},
		"newsletter":   map[string]any{"limit": 5, "window_seconds": 3600},
		"login":        map[string]any{"limit": 10, "window_seconds": 900},
		"reset":        map[string]any{"limit": 3, "window_seconds": 3600},
	})

	viper.SetDefault("bot_protection.honeypot_fields", []string{"website", "_hp"})
	viper.SetDefault("bot_protection.min_fill_seconds", 3)
	viper.SetDefault("bot_protection.max_form_age_hours", 24)
	viper.SetDefault("bot_protection.require_form_started", false)

	viper.SetDefault("tickets.prefix", "RCH")
	viper.SetDefault("tickets.max_attempts", 5)
	viper.SetDefault("tickets.backoff_millis", 100)
	viper.SetDefault("tickets.strict_transitions", false)
	viper.SetDefault("tickets.attention_age_hours", 12)

	viper.SetDefault("business.name", "RemotCyberHelp")
	viper.SetDefault("business.timezone", "Africa/Nairobi")
	viper.SetDefault("business.slot_minutes", 60)

	viper.SetDefault("events.nats_url", "")
	viper.SetDefault("events.subject_prefix", "rch")

	viper.SetDefault("scheduler.enabled", true)
	viper.SetDefault("scheduler.attention_digest", "@every 1h")
	viper.SetDefault("scheduler.cleanup", "@daily")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")
}
