package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"remotcyberhelp/internal/infrastructure/config"
	"remotcyberhelp/internal/interfaces/http/middleware"
	"remotcyberhelp/internal/interfaces/http/routes"
	"remotcyberhelp/internal/shared/logger"

	_ "remotcyberhelp/docs"
)

// Router owns the gin engine and the container that feeds it.
type Router struct {
	*Container
}

func NewRouter(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config, log logger.Interface) (*Router, error) {
	c, err := NewContainer(db, mongoDB, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Router{Container: c}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	cfg := r.cfg

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CustomLogger(r.log))
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	if cfg.Metrics.Enabled {
		r.engine.Use(middleware.Metrics(r.metrics))
		r.engine.GET(cfg.Metrics.Path, gin.WrapH(r.metrics.Handler()))
	}

	r.engine.GET("/health", r.hdlrs.health.HealthCheck)

	if !cfg.Server.IsProduction() {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group("/api")
	api.GET("/health", r.hdlrs.health.HealthCheck)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.auth,
		AuthMiddleware: r.authMiddleware,
		RateLimit:      r.rateLimit,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        r.hdlrs.ticket,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
		RateLimit:            r.rateLimit,
		BotProtection:        r.botProtection,
	})

	routes.SetupSiteRoutes(api, &routes.SiteRouteConfig{
		ContactHandler:      r.hdlrs.contact,
		ConsultationHandler: r.hdlrs.consultation,
		BlogHandler:         r.hdlrs.blog,
		GovernmentHandler:   r.hdlrs.government,
		WorkingHoursHandler: r.hdlrs.workingHours,
		NewsletterHandler:   r.hdlrs.newsletter,
		AuthMiddleware:      r.authMiddleware,
		RateLimit:           r.rateLimit,
		BotProtection:       r.botProtection,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		DashboardHandler:     r.hdlrs.dashboard,
		UserHandler:          r.hdlrs.users,
		ContactHandler:       r.hdlrs.contact,
		ConsultationHandler:  r.hdlrs.consultation,
		BlogHandler:          r.hdlrs.blog,
		GovernmentHandler:    r.hdlrs.government,
		WorkingHoursHandler:  r.hdlrs.workingHours,
		NewsletterHandler:    r.hdlrs.newsletter,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
