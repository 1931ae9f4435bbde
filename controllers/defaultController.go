package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Farmley API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

PRODUCT
- GET "/products" - List products (category, search, pagination)
- GET "/products/{id}" - Get product by ID
- POST "/products" - Create new product (admin)
- PUT "/products/{id}" - Update product (admin)
- DELETE "/products/{id}" - Delete product (admin)
- POST "/products/{id}/images" - Upload product image (admin)
- GET "/admin/products/export" - Export catalog as xlsx (admin)

CART
- GET "/cart" - List cart for the authenticated user
- POST "/cart" - Add item (insert or increment)
- PUT "/cart/{productId}" - Set line quantity
- DELETE "/cart/{productId}" - Remove line
- DELETE "/cart" - Clear cart

ORDER
- POST "/orders/checkout" - Submit checkout (supports Idempotency-Key header)
- GET "/orders" - List your orders
- GET "/orders/{orderId}" - Get order by ID
- GET "/admin/orders" - List all orders (admin)
- PATCH "/admin/orders/{orderId}/status" - Update order status (admin)
- GET "/ws/orders" - Live order feed (admin, websocket)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
