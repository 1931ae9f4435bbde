package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mohit-gami/farmley-api/models"
	"github.com/mohit-gami/farmley-api/utils"
	"gorm.io/gorm"
)

var (
	errProductMissing    = errors.New("product does not exist")
	errInsufficientStock = errors.New("insufficient stock")
	errTotalMismatch     = errors.New("client total disagrees with server pricing")
)

// Checkout converts the submitted line items into a persisted order. Prices
// are re-derived from the catalog inside the transaction, so a stale or
// tampered client total can never be stored; stock deduction, order creation
// and cart clearing commit or roll back together.
func Checkout(db *gorm.DB, idem IdempotencyStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID := ctx.GetUint("userId")

		var input models.CheckoutInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}

		if key := ctx.GetHeader("Idempotency-Key"); key != "" && idem != nil {
			ok, err := idem.SetIdempotency(ctx, fmt.Sprintf("checkout:%d:%s", userID, key))
			if err != nil {
				log.Println("Idempotency check error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Idempotency check failed")
				return
			}
			if !ok {
				sendErrorResponse(ctx, http.StatusConflict, "Duplicate checkout request")
				return
			}
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var subtotal float64
			items := make([]models.OrderItem, 0, len(input.Items))
			productIDs := make([]uint, 0, len(input.Items))

			for _, it := range input.Items {
				var product models.Product
				if err := tx.First(&product, it.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", errProductMissing, it.ProductID)
					}
					return err
				}

				// Conditional decrement: if no row matches, a concurrent
				// checkout drained the stock between read and write.
				res := tx.Model(&models.Product{}).
					Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", it.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return fmt.Errorf("%w: %s", errInsufficientStock, product.Name)
				}

				subtotal += product.Price * float64(it.Quantity)
				items = append(items, models.OrderItem{
					ProductID: product.ID,
					Name:      product.Name,
					Price:     product.Price,
					Quantity:  it.Quantity,
				})
				productIDs = append(productIDs, it.ProductID)
			}

			totals, err := computeTotals(subtotal, input.Coupon)
			if err != nil {
				return err
			}

			if input.Total > 0 && math.Abs(input.Total-totals.Total) > totalTolerance {
				return fmt.Errorf("%w: client %.2f, server %.2f", errTotalMismatch, input.Total, totals.Total)
			}

			order = models.Order{
				Reference:     "ORD-" + uuid.NewString(),
				UserID:        userID,
				FirstName:     input.FirstName,
				LastName:      input.LastName,
				Email:         input.Email,
				Phone:         input.Phone,
				Address:       input.Address,
				City:          input.City,
				State:         input.State,
				ZipCode:       input.ZipCode,
				PaymentMethod: input.PaymentMethod,
				Coupon:        input.Coupon,
				Subtotal:      totals.Subtotal,
				Discount:      totals.Discount,
				Tax:           totals.Tax,
				Shipping:      totals.Shipping,
				Total:         totals.Total,
				Status:        models.OrderStatusPending,
				PaymentStatus: "PENDING",
				Items:         items,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			// The ordered lines leave the cart in the same transaction, so
			// the two stores cannot observably diverge.
			return tx.Where("user_id = ? AND product_id IN ?", userID, productIDs).
				Delete(&models.CartLine{}).Error
		})
		if err != nil {
			switch {
			case errors.Is(err, errProductMissing):
				sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			case errors.Is(err, errUnknownCoupon):
				sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			case errors.Is(err, errInsufficientStock):
				sendErrorResponse(ctx, http.StatusConflict, err.Error())
			case errors.Is(err, errTotalMismatch):
				sendErrorResponse(ctx, http.StatusConflict, err.Error())
			default:
				log.Println("Checkout transaction error:", err)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
			}
			return
		}

		BroadcastOrder(order)

		if err := sendOrderConfirmationEmail(order); err != nil {
			log.Println("Error sending order confirmation email:", err)
		}

		if input.PaymentMethod == "online" {
			redirectURL, trackingID, err := submitPaymentRequest(order)
			if err != nil {
				log.Printf("Payment initiation failed for order %s: %v", order.Reference, err)
				sendJSONResponse(ctx, http.StatusCreated, gin.H{
					"message": "Order created but payment initiation failed. Retry payment from your orders page.",
					"order":   order,
				})
				return
			}

			if err := db.Model(&order).Update("gateway_tracking_id", trackingID).Error; err != nil {
				log.Printf("Order %s created, but tracking ID not saved: %s", order.Reference, trackingID)
			}

			sendJSONResponse(ctx, http.StatusCreated, gin.H{
				"message":     "Order created successfully. Redirect user to payment.",
				"order":       order,
				"redirectUrl": redirectURL,
			})
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message": "Order created successfully.",
			"order":   order,
		})
	}
}

func sendOrderConfirmationEmail(order models.Order) error {
	lines := make([]utils.EmailOrderLine, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, utils.EmailOrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    strconv.FormatFloat(item.Price, 'f', 2, 64),
		})
	}

	emailData := utils.EmailData{
		Name:      order.FirstName,
		Reference: order.Reference,
		Total:     strconv.FormatFloat(order.Total, 'f', 2, 64),
		Items:     lines,
		LogoURL:   os.Getenv("FRONTEND_URL") + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(order.Email, "Your Farmley order "+order.Reference, emailData, templatePath)
}
