package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/controllers"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Session store for OAuth state
	store := cookie.NewStore([]byte(os.Getenv("SESSION_SECRET")))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   os.Getenv("ENV") == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("herventures", store))

	// Auth routes (for OAuth)
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	// Referral link click-through, outside the API version group so
	// ambassador links stay short
	router.GET("/r/:code", controllers.ReferralLinkRedirect)

	// API version group
	api := router.Group("/v1")
	{
		// Payment provider webhook
		api.POST("/webhooks/payment", controllers.HandlePaymentWebhook)

		initUserRoutes(api)
		initAmbassadorRoutes(api)
		initAdminRoutes(api)
	}

	return router
}
