package routes

import (
	"github.com/gin-gonic/gin"

	"remotcyberhelp/internal/interfaces/http/handlers"
	"remotcyberhelp/internal/interfaces/http/middleware"
)

type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

func SetupAuthRoutes(api gin.IRouter, config *AuthRouteConfig) {
	h := config.AuthHandler
	limit := config.RateLimit.Limit

	auth := api.Group("/auth")
	{
		auth.POST("/register", limit(middleware.ActionLogin), h.Register)
		auth.POST("/login", limit(middleware.ActionLogin), h.Login)
		auth.POST("/refresh", h.Refresh)

		auth.POST("/forgot-password", limit(middleware.ActionReset), h.ForgotPassword)
		auth.POST("/verify-reset-code", limit(middleware.ActionReset), h.VerifyResetCode)
		auth.POST("/reset-password", limit(middleware.ActionReset), h.ResetPassword)

		auth.GET("/me", config.AuthMiddleware.RequireAuth(), h.Me)
		auth.PUT("/password", config.AuthMiddleware.RequireAuth(), h.ChangePassword)
		auth.POST("/logout", config.AuthMiddleware.RequireAuth(), h.Logout)
	}
}
