package routes

import (
	"roadassist/internal/middleware"

	handlers "roadassist/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupServiceRoutes sets up routes for roadside assistance requests
func SetupServiceRoutes(r *gin.RouterGroup, serviceHandler *handlers.ServiceHandler, jwtSecret string) {
	services := r.Group("/services")
	services.Use(middleware.AuthRequired(jwtSecret))
	{
		services.POST("", serviceHandler.CreateService)
		services.GET("", serviceHandler.GetUserServices)

		// Nearby lookup is registered before the :id route so "nearby" is
		// never parsed as an object ID. Only providers scan for open
		// requests.
		services.GET("/nearby", middleware.ProviderRequired(), serviceHandler.GetNearbyServices)

		services.GET("/:id", serviceHandler.GetServiceDetails)
		services.PUT("/:id/status", serviceHandler.UpdateServiceStatus)
	}
}
