package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
	"github.com/mohit-gami/farmley-api/middlewares"
	"gorm.io/gorm"
)

func ProductRoutes(server *gin.Engine, db *gorm.DB) {
	server.GET("/products", controllers.GetProducts(db))
	server.GET("/products/:id", controllers.GetProduct(db))

	admin := server.Group("/", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.POST("/products", controllers.CreateProduct(db))
		admin.PUT("/products/:id", controllers.UpdateProduct(db))
		admin.DELETE("/products/:id", controllers.DeleteProduct(db))
		admin.POST("/products/:id/images", controllers.UploadProductImage(db))
		admin.GET("/admin/products/export", controllers.ExportProductsToExcel(db))
	}
}
