package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mohit-gami/farmley-api/models"
	"gorm.io/gorm"
)

type cartAddInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type cartUpdateInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func parseProductIDParam(ctx *gin.Context) (uint, bool) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil || productID < 1 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return uint(productID), true
}

// GetCart returns all cart lines for the authenticated user, each joined
// with its current product data.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		var entries []models.CartEntry
		err := db.Table("cart_lines").
			Select("cart_lines.id, cart_lines.product_id, cart_lines.quantity, products.name, products.category, products.price, products.image").
			Joins("JOIN products ON products.id = cart_lines.product_id AND products.deleted_at IS NULL").
			Where("cart_lines.user_id = ?", userID).
			Order("cart_lines.created_at").
			Scan(&entries).Error
		if err != nil {
			log.Println("Database error fetching cart:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		var subtotal float64
		for i := range entries {
			entries[i].Subtotal = round2(entries[i].Price * float64(entries[i].Quantity))
			subtotal += entries[i].Subtotal
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"cart":     entries,
			"subtotal": round2(subtotal),
		})
	}
}

// AddToCart inserts a cart line for (user, product), or increments the
// quantity of the existing one. A losing writer in a concurrent double
// submit hits the unique index instead of creating a duplicate line.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		var input cartAddInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}
		if input.Quantity < 1 {
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusBadRequest, "Product does not exist")
			} else {
				log.Println("Database error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to validate product")
			}
			return
		}

		var line models.CartLine
		err := db.Transaction(func(tx *gorm.DB) error {
			err := tx.Where("user_id = ? AND product_id = ?", userID, input.ProductID).First(&line).Error
			switch {
			case err == nil:
				line.Quantity += input.Quantity
				return tx.Save(&line).Error
			case errors.Is(err, gorm.ErrRecordNotFound):
				line = models.CartLine{UserID: userID, ProductID: input.ProductID, Quantity: input.Quantity}
				return tx.Create(&line).Error
			default:
				return err
			}
		})
		if err != nil {
			log.Println("Cart upsert error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add item to cart")
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message": product.Name + " added to cart",
			"line":    line,
		})
	}
}

// UpdateCartLine sets the quantity of an existing line. Quantities below 1
// are rejected here, not just in the client.
func UpdateCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		productID, ok := parseProductIDParam(ctx)
		if !ok {
			return
		}

		var input cartUpdateInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}

		var line models.CartLine
		err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Item not in cart")
			} else {
				log.Println("Database error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart item")
			}
			return
		}

		line.Quantity = input.Quantity
		if err := db.Save(&line).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart item quantity.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart item quantity updated",
			"line":    line,
		})
	}
}

// RemoveCartLine deletes the matching line. Removing an absent line is a
// well-defined 404, never a crash.
func RemoveCartLine(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		productID, ok := parseProductIDParam(ctx)
		if !ok {
			return
		}

		result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartLine{})
		if result.Error != nil {
			log.Println("Delete error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove item")
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Item not in cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// ClearCart removes every line belonging to the authenticated user.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		if err := db.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
			log.Println("Clear cart error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
