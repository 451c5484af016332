package routes

import (
	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/interfaces/http/handlers"
	"remotcyberhelp/internal/interfaces/http/middleware"
)

// SiteRouteConfig covers the public website forms and content.
type SiteRouteConfig struct {
	ContactHandler      *handlers.ContactHandler
	ConsultationHandler *handlers.ConsultationHandler
	BlogHandler         *handlers.BlogHandler
	GovernmentHandler   *handlers.GovernmentHandler
	WorkingHoursHandler *handlers.WorkingHoursHandler
	NewsletterHandler   *handlers.NewsletterHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimit           *middleware.RateLimitMiddleware
	BotProtection       *middleware.BotProtectionMiddleware
}

func SetupSiteRoutes(api gin.IRouter, config *SiteRouteConfig) {
	limit := config.RateLimit.Limit
	protect := config.BotProtection.Protect

	api.POST("/contact", limit(middleware.ActionContact), protect(), config.ContactHandler.Submit)

	consultation := api.Group("/consultation")
	{
		consultation.POST("", limit(middleware.ActionConsultation), protect(), config.ConsultationHandler.Book)
		consultation.GET("/availability", config.ConsultationHandler.Availability)
	}

	blog := api.Group("/blog")
	{
		blog.GET("", config.BlogHandler.ListPublished)
		blog.GET("/categories", config.BlogHandler.Categories)
		blog.GET("/:slug", config.BlogHandler.GetBySlug)
	}

	government := api.Group("/government")
	{
		// Optional auth lets admins ask for retired services with ?all=true.
		government.GET("/services", config.AuthMiddleware.OptionalAuth(), config.GovernmentHandler.ListServices)
		government.GET("/services/:code", config.GovernmentHandler.GetService)
		government.POST("/requests", limit(middleware.ActionGovernment), protect(), config.GovernmentHandler.Submit)
		government.GET("/requests/:reference", config.GovernmentHandler.Track)
	}

	hours := api.Group("/working-hours")
	{
		hours.GET("", config.WorkingHoursHandler.GetSchedule)
		hours.GET("/status", config.WorkingHoursHandler.GetStatus)
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", limit(middleware.ActionNewsletter), protect(), config.NewsletterHandler.Subscribe)
		newsletter.POST("/unsubscribe", config.NewsletterHandler.Unsubscribe)
	}
}
