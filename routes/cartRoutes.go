package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
	"github.com/mohit-gami/farmley-api/middlewares"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB) {
	cart := server.Group("/cart", middlewares.RequireAuth())
	{
		cart.GET("", controllers.GetCart(db))
		cart.POST("", controllers.AddToCart(db))
		cart.PUT("/:productId", controllers.UpdateCartLine(db))
		cart.DELETE("/:productId", controllers.RemoveCartLine(db))
		cart.DELETE("", controllers.ClearCart(db))
	}
}
