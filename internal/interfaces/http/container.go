package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"remotcyberhelp/internal/domain/ticket"
	"remotcyberhelp/internal/infrastructure/auth"
	"remotcyberhelp/internal/infrastructure/cache"
	"remotcyberhelp/internal/infrastructure/captcha"
	"remotcyberhelp/internal/infrastructure/config"
	"remotcyberhelp/internal/infrastructure/email"
	"remotcyberhelp/internal/infrastructure/metrics"
	"remotcyberhelp/internal/infrastructure/permission"
	"remotcyberhelp/internal/infrastructure/pubsub"
	"remotcyberhelp/internal/infrastructure/ratelimit"
	"remotcyberhelp/internal/infrastructure/scheduler"
	"remotcyberhelp/internal/interfaces/http/middleware"
	"remotcyberhelp/internal/shared/logger"
)

// eventBus is the publishing side of the ticket event transport.
type eventBus interface {
	Publish(ctx context.Context, event ticket.Event) error
	Close() error
}

// Container holds infrastructure, repositories, use cases and handlers and
// wires them together. Shutdown releases everything it opened.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	mongoDB *mongo.Database
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimit            *middleware.RateLimitMiddleware
	botProtection        *middleware.BotProtectionMiddleware

	// Shared services
	jwtSvc    *auth.JWTService
	hasher    *auth.BcryptPasswordHasher
	mailer    *email.Mailer
	metrics   *metrics.Metrics
	enforcer  *permission.Enforcer
	events    eventBus
	allocator *ticket.NumberAllocator
	govRefs   *ticket.NumberAllocator

	scheduler *scheduler.Manager
}

// NewContainer builds the object graph. db is required; mongoDB is only used
// when storage.backend=mongo.
func NewContainer(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine:  gin.New(),
		db:      db,
		mongoDB: mongoDB,
		cfg:     cfg,
		log:     log,
	}

	// Section 1: Infrastructure - Redis, repositories, allocators
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Notifications, events, metrics
	if err := c.initSideEffects(); err != nil {
		return nil, err
	}

	// Section 3: Use cases and handlers
	c.ucs = newUseCases(c)
	c.hdlrs = newHandlers(c)

	// Section 4: Middlewares
	if err := c.initMiddlewares(); err != nil {
		return nil, err
	}

	// Section 5: Background jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			// Redis only backs optional features, so run without it.
			c.log.Warnw("redis unavailable, falling back to in-process limiter and store counters", "error", err)
		} else {
			c.redis = client
			c.log.Infow("redis connection established", "addr", cfg.Redis.GetAddr())
		}
	}

	repos, err := newRepositories(c.db, c.mongoDB, cfg, c.log)
	if err != nil {
		return err
	}
	c.repos = repos

	counter := c.repos.counter
	if cfg.Storage.Counter == "redis" {
		if c.redis == nil {
			c.log.Warnw("storage.counter=redis but redis is not available, using store counter")
		} else {
			counter = cache.NewRedisCounterStore(c.redis)
		}
	}

	c.allocator = ticket.NewNumberAllocator(counter, c.repos.tickets,
		ticket.WithPrefix(cfg.Tickets.Prefix),
		ticket.WithMaxAttempts(cfg.Tickets.MaxAttempts),
		ticket.WithBackoff(cfg.Tickets.Backoff()),
	)
	c.govRefs = newGovernmentAllocator(counter, c.repos.govRequests, cfg)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpDays, cfg.Auth.JWT.RefreshExpDays)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.BcryptCost)
	return nil
}

func (c *Container) initSideEffects() error {
	cfg := c.cfg

	c.metrics = metrics.New()

	sender := email.NewSender(&cfg.Email, c.log)
	c.mailer = email.NewMailer(sender, email.MailerConfig{
		BusinessName:   cfg.Business.Name,
		BaseURL:        cfg.Server.BaseURL,
		AdminAddresses: cfg.Email.AdminAddresses,
	}, c.repos.users, c.log)

	switch {
	case cfg.Events.NATSURL != "":
		bus, err := pubsub.NewNATSTicketEventBus(cfg.Events.NATSURL, cfg.Events.SubjectPrefix, c.log)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		c.events = bus
		c.log.Infow("ticket events published to nats", "url", cfg.Events.NATSURL)
	case c.redis != nil:
		c.events = pubsub.NewRedisTicketEventBus(c.redis, c.log)
		c.log.Infow("ticket events published to redis")
	default:
		c.events = pubsub.NoopTicketEventBus{}
	}
	return nil
}

func (c *Container) initMiddlewares() error {
	cfg := c.cfg

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize permissions: %w", err)
	}
	c.enforcer = enforcer

	var limiter ratelimit.RateLimiter = ratelimit.NewMemoryRateLimiter()
	if c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)
	c.rateLimit = middleware.NewRateLimitMiddleware(limiter, &cfg.RateLimit, c.metrics, c.log)
	c.botProtection = middleware.NewBotProtectionMiddleware(
		&cfg.BotProtection,
		&cfg.Recaptcha,
		captcha.NewRecaptchaVerifier(&cfg.Recaptcha, c.log),
		c.metrics,
		c.log,
	)
	return nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		return nil
	}
	m := scheduler.NewManager(c.log)
	if err := m.RegisterAttentionDigest(c.cfg.Scheduler.AttentionDigest, c.ucs.ticket.attention); err != nil {
		return fmt.Errorf("failed to register attention digest: %w", err)
	}
	if err := m.RegisterResetCodeCleanup(c.cfg.Scheduler.Cleanup, c.ucs.user.cleanupResetCodes); err != nil {
		return fmt.Errorf("failed to register reset code cleanup: %w", err)
	}
	c.scheduler = m
	return nil
}

// Start launches background jobs.
func (c *Container) Start() {
	if c.scheduler != nil {
		c.scheduler.Start()
	}
}

// Shutdown stops background jobs and closes connections opened by the container.
func (c *Container) Shutdown(ctx context.Context) {
	if c.scheduler != nil {
		c.scheduler.Stop(ctx)
	}
	if c.events != nil {
		if err := c.events.Close(); err != nil {
			c.log.Warnw("failed to close event bus", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
