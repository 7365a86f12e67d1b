package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/controllers"
	"github.com/herventures/HerVentures/middleware"
)

// initUserRoutes initializes public and member routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/register", controllers.RegisterUser)
	router.POST("/login", controllers.LoginUser)

	// Referral click RPC; fire-and-forget from the client's perspective
	router.POST("/referral/click", controllers.TrackReferralClick)

	// Membership plans and public directory
	router.GET("/plans", controllers.ListPlans)
	router.GET("/directory", controllers.GetBusinessDirectory)

	// Protected routes (require authentication)
	protected := router.Group("/user")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", controllers.LogoutUser)

		// Checkout
		protected.POST("/checkout", controllers.Checkout)
		protected.POST("/checkout/verify", controllers.VerifyCheckoutPayment)

		// Subscription
		protected.GET("/subscription", controllers.GetMySubscription)

		// Business listings
		protected.POST("/businesses", controllers.CreateBusinessListing)
		protected.GET("/businesses", controllers.ListMyBusinesses)
		protected.PUT("/businesses/:id", controllers.UpdateBusinessListing)
		protected.DELETE("/businesses/:id", controllers.DeleteBusinessListing)

		// Notifications
		protected.GET("/notifications", controllers.ListNotifications)
		protected.GET("/notifications/unread-count", controllers.GetUnreadNotificationCount)
		protected.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
		protected.PATCH("/notifications/read-all", controllers.MarkAllNotificationsRead)

		// Ambassador program application
		protected.POST("/ambassador/apply", controllers.ApplyForAmbassador)
	}
}
