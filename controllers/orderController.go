package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mohit-gami/farmley-api/models"
	"gorm.io/gorm"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusProcessing: true,
	models.OrderStatusShipped:    true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

// GetUserOrders returns the authenticated user's orders, newest first.
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var orders []models.Order
		result := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at " + sortOrder).
			Find(&orders)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrder returns one order. Users may only read their own; admins any.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			} else {
				log.Println(err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
			}
			return
		}

		if order.UserID != ctx.GetUint("userId") && !isAdmin(ctx) {
			sendErrorResponse(ctx, http.StatusForbidden, "You do not own this order")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
	}
}

// GetOrders lists all orders for the admin dashboard, paginated.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * limit

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Preload("Items")
		if status := ctx.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if search := ctx.Query("search"); search != "" {
			query = query.Where("reference LIKE ?", "%"+search+"%")
		}

		var orders []models.Order
		result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
			return
		}

		var count int64
		countQuery := db.Model(&models.Order{})
		if status := ctx.Query("status"); status != "" {
			countQuery = countQuery.Where("status = ?", status)
		}
		if search := ctx.Query("search"); search != "" {
			countQuery = countQuery.Where("reference LIKE ?", "%"+search+"%")
		}
		countQuery.Count(&count)

		totalPages := math.Ceil(float64(count) / float64(limit))

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"orders": orders,
			"metadata": gin.H{
				"total":       count,
				"currentPage": page,
				"limit":       limit,
				"hasPrevPage": page > 1,
				"hasNextPage": int(totalPages) > page,
			},
		})
	}
}

// UpdateOrderStatus moves an order through its lifecycle from the admin
// surface. Only known statuses are accepted.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var orderStatusData struct {
			Status string `json:"status" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
			return
		}

		if !validOrderStatuses[orderStatusData.Status] {
			sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status: "+orderStatusData.Status)
			return
		}

		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", orderStatusData.Status)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
	}
}

func isAdmin(ctx *gin.Context) bool {
	claims, exists := ctx.Get("user")
	if !exists {
		return false
	}
	mapClaims, ok := claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, _ := mapClaims["role"].(string)
	return role == "admin"
}
