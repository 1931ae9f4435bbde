package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
	"github.com/mohit-gami/farmley-api/middlewares"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB, idem controllers.IdempotencyStore) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("/checkout", controllers.Checkout(db, idem))
		orders.GET("", controllers.GetUserOrders(db))
		orders.GET("/:orderId", controllers.GetOrder(db))
	}

	admin := server.Group("/admin/orders", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetOrders(db))
		admin.PATCH("/:orderId/status", controllers.UpdateOrderStatus(db))
	}

	server.GET("/payments/ipn", controllers.HandlePaymentIPN(db))
	server.POST("/payments/ipn", controllers.HandlePaymentIPN(db))

	server.GET("/ws/orders", controllers.OrderFeed)
}
