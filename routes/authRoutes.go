package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup(db))
		auth.POST("/login", controllers.Login(db))
	}
}
