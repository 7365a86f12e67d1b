package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/controllers"
	"github.com/herventures/HerVentures/middleware"
)

// initAdminRoutes initializes all admin-related routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.GetAdminDashboard)

			// Member management
			admin.GET("/users", controllers.GetUsers)
			admin.PATCH("/users/:id/block", controllers.BlockUser)
			admin.PATCH("/users/:id/unblock", controllers.UnblockUser)

			// Plan management
			admin.POST("/plans", controllers.CreatePlan)
			admin.GET("/plans", controllers.GetPlans)
			admin.PUT("/plans/:id", controllers.UpdatePlan)
			admin.PATCH("/plans/:id/deactivate", controllers.DeactivatePlan)

			// Ambassador management
			admin.GET("/ambassadors", controllers.ListAmbassadors)
			admin.PATCH("/ambassadors/:id/approve", controllers.ApproveAmbassador)
			admin.PATCH("/ambassadors/:id/reject", controllers.RejectAmbassador)
			admin.PATCH("/ambassadors/:id/suspend", controllers.SuspendAmbassador)
			admin.PATCH("/ambassadors/:id/commission-rate", controllers.UpdateCommissionRate)

			// Commission ledger
			admin.GET("/commissions", controllers.ListCommissions)
			admin.PATCH("/commissions/:id/pay", controllers.MarkCommissionPaid)
			admin.GET("/commissions/report/excel", controllers.DownloadCommissionReportExcel)
			admin.GET("/commissions/report/pdf", controllers.DownloadCommissionReportPDF)
		}
	}
}
