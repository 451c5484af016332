package config

import (
	"fmt"
	"strings"
	"time"
)

type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	Mode            string   `mapstructure:"mode"`
	Environment     string   `mapstructure:"environment"`
	Version         string   `mapstructure:"version"`
	BaseURL         string   `mapstructure:"base_url"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether error details must be hidden from clients.
func (s *ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	DSN             string `mapstructure:"dsn"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the configured DSN, or builds one for the selected driver.
func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type MongoConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// StorageConfig selects which adapter backs tickets, accounts and counters.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // sql | mongo
	Counter string `mapstructure:"counter"` // store | redis
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether a Redis host was configured.
func (r *RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret         string `mapstructure:"secret"`
	AccessExpDays  int    `mapstructure:"access_exp_days"`
	RefreshExpDays int    `mapstructure:"refresh_exp_days"`
	Issuer         string `mapstructure:"issuer"`
}

type AuthConfig struct {
	JWT                 JWTConfig `mapstructure:"jwt"`
	BcryptCost          int       `mapstructure:"bcrypt_cost"`
	MaxLoginAttempts    int       `mapstructure:"max_login_attempts"`
	LockDurationMinutes int       `mapstructure:"lock_duration_minutes"`
	ResetCodeMinutes    int       `mapstructure:"reset_code_minutes"`
}

func (a *AuthConfig) LockDuration() time.Duration {
	return time.Duration(a.LockDurationMinutes) * time.Minute
}

func (a *AuthConfig) ResetCodeTTL() time.Duration {
	return time.Duration(a.ResetCodeMinutes) * time.Minute
}

type EmailConfig struct {
	Provider       string   `mapstructure:"provider"` // smtp | sendgrid | noop
	SMTPHost       string   `mapstructure:"smtp_host"`
	SMTPPort       int      `mapstructure:"smtp_port"`
	SMTPUser       string   `mapstructure:"smtp_user"`
	SMTPPassword   string   `mapstructure:"smtp_password"`
	SendGridAPIKey string   `mapstructure:"sendgrid_api_key"`
	FromAddress    string   `mapstructure:"from_address"`
	FromName       string   `mapstructure:"from_name"`
	AdminAddresses []string `mapstructure:"admin_addresses"`
}

type RecaptchaConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	SecretKey      string  `mapstructure:"secret_key"`
	VerifyURL      string  `mapstructure:"verify_url"`
	MinScore       float64 `mapstructure:"min_score"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	FailOpen       bool    `mapstructure:"fail_open"`
}

type RateLimitRule struct {
	Limit         int `mapstructure:"limit"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

func (r RateLimitRule) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled bool                     `mapstructure:"enabled"`
	Actions map[string]RateLimitRule `mapstructure:"actions"`
}

// Rule returns the rule for an action, falling back to the "default" entry.
func (r *RateLimitConfig) Rule(action string) RateLimitRule {
	if rule, ok := r.Actions[action]; ok {
		return rule
	}
	if rule, ok := r.Actions["default"]; ok {
		return rule
	}
	return RateLimitRule{Limit: 10, WindowSeconds: 900}
}

type BotProtectionConfig struct {
	HoneypotFields     []string `mapstructure:"honeypot_fields"`
	MinFillSeconds     int      `mapstructure:"min_fill_seconds"`
	MaxFormAgeHours    int      `mapstructure:"max_form_age_hours"`
	RequireFormStarted bool     `mapstructure:"require_form_started"`
}

type TicketConfig struct {
	Prefix            string `mapstructure:"prefix"`
	MaxAttempts       int    `mapstructure:"max_attempts"`
	BackoffMillis     int    `mapstructure:"backoff_millis"`
	StrictTransitions bool   `mapstructure:"strict_transitions"`
	AttentionAgeHours int    `mapstructure:"attention_age_hours"`
}

func (t *TicketConfig) Backoff() time.Duration {
	return time.Duration(t.BackoffMillis) * time.Millisecond
}

func (t *TicketConfig) AttentionAge() time.Duration {
	return time.Duration(t.AttentionAgeHours) * time.Hour
}

type BusinessConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
	SlotMins int    `mapstructure:"slot_minutes"`
}

type EventsConfig struct {
	NATSURL       string `mapstructure:"nats_url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	AttentionDigest string `mapstructure:"attention_digest"`
	Cleanup         string `mapstructure:"cleanup"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
