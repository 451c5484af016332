package routes

import (
	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/infrastructure/permission"
	"remotcyberhelp/internal/interfaces/http/handlers"
	"remotcyberhelp/internal/interfaces/http/middleware"
)

type AdminRouteConfig struct {
	DashboardHandler     *handlers.DashboardHandler
	UserHandler          *handlers.UserHandler
	ContactHandler       *handlers.ContactHandler
	ConsultationHandler  *handlers.ConsultationHandler
	BlogHandler          *handlers.BlogHandler
	GovernmentHandler    *handlers.GovernmentHandler
	WorkingHoursHandler  *handlers.WorkingHoursHandler
	NewsletterHandler    *handlers.NewsletterHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupAdminRoutes(api gin.IRouter, config *AdminRouteConfig) {
	can := config.PermissionMiddleware.RequirePermission

	admin := api.Group("/admin")
	admin.Use(config.AuthMiddleware.RequireAuth())

	admin.GET("/dashboard", can(permission.ResourceDashboard, permission.ActionRead), config.DashboardHandler.GetDashboard)

	users := admin.Group("/users")
	{
		users.GET("", can(permission.ResourceUser, permission.ActionRead), config.UserHandler.ListUsers)
		users.PATCH("/:id/role", can(permission.ResourceUser, permission.ActionChangeRole), config.UserHandler.ChangeRole)
		users.POST("/:id/unlock", can(permission.ResourceUser, permission.ActionUnlock), config.UserHandler.UnlockUser)
		users.PATCH("/:id/active", can(permission.ResourceUser, permission.ActionUpdate), config.UserHandler.SetActive)
	}

	contacts := admin.Group("/contacts")
	{
		contacts.GET("", can(permission.ResourceContact, permission.ActionRead), config.ContactHandler.List)
		contacts.PATCH("/:id/status", can(permission.ResourceContact, permission.ActionUpdate), config.ContactHandler.UpdateStatus)
		contacts.DELETE("/:id", can(permission.ResourceContact, permission.ActionDelete), config.ContactHandler.Delete)
	}

	consultations := admin.Group("/consultations")
	{
		consultations.GET("", can(permission.ResourceConsultation, permission.ActionRead), config.ConsultationHandler.List)
		consultations.PATCH("/:id/status", can(permission.ResourceConsultation, permission.ActionUpdate), config.ConsultationHandler.UpdateStatus)
		consultations.DELETE("/:id", can(permission.ResourceConsultation, permission.ActionDelete), config.ConsultationHandler.Delete)
	}

	blog := admin.Group("/blog")
	{
		blog.GET("", can(permission.ResourceBlog, permission.ActionRead), config.BlogHandler.ListAll)
		blog.POST("", can(permission.ResourceBlog, permission.ActionCreate), config.BlogHandler.Create)
		blog.GET("/:id", can(permission.ResourceBlog, permission.ActionRead), config.BlogHandler.GetByID)
		blog.PUT("/:id", can(permission.ResourceBlog, permission.ActionUpdate), config.BlogHandler.Update)
		blog.DELETE("/:id", can(permission.ResourceBlog, permission.ActionDelete), config.BlogHandler.Delete)
	}

	government := admin.Group("/government/requests")
	{
		government.GET("", can(permission.ResourceGovernment, permission.ActionRead), config.GovernmentHandler.List)
		government.PATCH("/:reference/status", can(permission.ResourceGovernment, permission.ActionUpdate), config.GovernmentHandler.UpdateStatus)
	}

	hours := admin.Group("/working-hours")
	{
		hours.PUT("", can(permission.ResourceWorkingHours, permission.ActionUpdate), config.WorkingHoursHandler.UpdateSchedule)
		hours.POST("/holidays", can(permission.ResourceWorkingHours, permission.ActionCreate), config.WorkingHoursHandler.AddHoliday)
		hours.DELETE("/holidays/:date", can(permission.ResourceWorkingHours, permission.ActionDelete), config.WorkingHoursHandler.DeleteHoliday)
	}

	admin.GET("/newsletter/subscribers", can(permission.ResourceNewsletter, permission.ActionRead), config.NewsletterHandler.List)
}
