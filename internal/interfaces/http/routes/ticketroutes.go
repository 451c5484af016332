package routes

import (
	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/infrastructure/permission"
	tickethandlers "remotcyberhelp/internal/interfaces/http/handlers/ticket"
	"remotcyberhelp/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimit            *middleware.RateLimitMiddleware
	BotProtection        *middleware.BotProtectionMiddleware
}

func SetupTicketRoutes(api gin.IRouter, config *TicketRouteConfig) {
	h := config.TicketHandler
	auth := config.AuthMiddleware
	can := config.PermissionMiddleware.RequirePermission

	support := api.Group("/support")
	{
		// Anonymous visitors may open tickets; signed-in customers get them linked.
		support.POST("/tickets",
			config.RateLimit.Limit(middleware.ActionTicket),
			config.BotProtection.Protect(),
			auth.OptionalAuth(),
			h.CreateTicket)
		support.GET("/tickets",
			auth.RequireAuth(),
			can(permission.ResourceTicket, permission.ActionRead),
			h.ListTickets)
	}

	single := support.Group("/ticket")
	single.Use(auth.RequireAuth())
	{
		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		single.PATCH("/:id/status",
			can(permission.ResourceTicket, permission.ActionUpdate),
			h.UpdateStatus)
		single.POST("/:id/response",
			can(permission.ResourceTicket, permission.ActionRespond),
			h.AddResponse)
		single.POST("/:id/assign",
			can(permission.ResourceTicket, permission.ActionAssign),
			h.AssignTicket)
		single.POST("/:id/escalate",
			can(permission.ResourceTicket, permission.ActionEscalate),
			h.EscalateTicket)

		single.GET("/:id",
			can(permission.ResourceTicket, permission.ActionRead),
			h.GetTicket)
		single.DELETE("/:id",
			can(permission.ResourceTicket, permission.ActionDelete),
			h.DeleteTicket)
	}

	admin := support.Group("/admin")
	admin.Use(auth.RequireAuth(), can(permission.ResourceTicket, permission.ActionManage))
	{
		admin.GET("/stats", h.GetStats)
		admin.GET("/attention", h.GetAttentionRequired)
		admin.GET("/assigned/:adminId", h.GetAssignedTickets)
	}
}
