package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/controllers"
	"github.com/mohit-gami/farmley-api/initializers"
	"github.com/mohit-gami/farmley-api/routes"
)

func main() {
	initializers.LoadEnv()
	db := initializers.ConnectToDB()
	initializers.SyncDatabase(db)

	// Redis backs the checkout idempotency guard; without it duplicate
	// submissions are only caught by the cart unique index.
	var idem controllers.IdempotencyStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		idem = &controllers.RedisIdempotencyStore{Client: initializers.ConnectToRedis(addr)}
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://www.farmley.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db)
	routes.ProductRoutes(server, db)
	routes.CartRoutes(server, db)
	routes.OrderRoutes(server, db, idem)

	server.Run()
}
