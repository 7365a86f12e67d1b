package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/controllers"
	"github.com/herventures/HerVentures/middleware"
)

// initAmbassadorRoutes initializes routes for approved ambassadors
func initAmbassadorRoutes(router *gin.RouterGroup) {
	ambassador := router.Group("/ambassador")
	ambassador.Use(middleware.AuthMiddleware(), middleware.AmbassadorMiddleware())
	{
		ambassador.GET("/stats", controllers.GetAmbassadorStats)
		ambassador.GET("/commissions", controllers.ListAmbassadorCommissions)
	}
}
