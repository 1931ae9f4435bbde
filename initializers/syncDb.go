package initializers

import (
	"log"

	"github.com/mohit-gami/farmley-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}
	log.Println("Database synced successfully.")
}
