package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
}
