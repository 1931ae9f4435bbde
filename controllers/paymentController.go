package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/mohit-gami/farmley-api/models"
	"gorm.io/gorm"
)

func getGatewayAccessToken() (string, error) {
	consumerKey := os.Getenv("PAYMENT_CONSUMER_KEY")
	consumerSecret := os.Getenv("PAYMENT_CONSUMER_SECRET")

	if consumerKey == "" || consumerSecret == "" {
		return "", fmt.Errorf("payment gateway credentials are not set")
	}

	requestBody := map[string]string{
		"consumer_key":    consumerKey,
		"consumer_secret": consumerSecret,
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestBody).
		Post(os.Getenv("PAYMENT_API_URL") + "/api/Auth/RequestToken")

	if err != nil {
		return "", err
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gateway token request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]any
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token, ok := response["token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in response: %v", response)
	}

	return token, nil
}

// submitPaymentRequest hands a persisted order to the payment gateway and
// returns the redirect URL and tracking id the client needs.
func submitPaymentRequest(order models.Order) (redirectURL, trackingID string, err error) {
	token, err := getGatewayAccessToken()
	if err != nil {
		return "", "", err
	}

	notificationID := os.Getenv("PAYMENT_NOTIFICATION_ID")
	if notificationID == "" {
		return "", "", fmt.Errorf("PAYMENT_NOTIFICATION_ID is not set")
	}

	gatewayOrder := map[string]any{
		"id":              order.Reference,
		"currency":        "INR",
		"amount":          order.Total,
		"description":     fmt.Sprintf("Payment for order %s", order.Reference),
		"callback_url":    os.Getenv("FRONTEND_URL") + "/payment/callback",
		"notification_id": notificationID,
		"billing_address": map[string]any{
			"email_address": order.Email,
			"phone_number":  order.Phone,
			"country_code":  "IN",
			"first_name":    order.FirstName,
			"last_name":     order.LastName,
			"city":          order.City,
			"line_1":        order.Address,
			"postal_code":   order.ZipCode,
		},
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeaders(map[string]string{
			"Authorization": "Bearer " + token,
			"Accept":        "application/json",
			"Content-Type":  "application/json",
		}).
		SetBody(gatewayOrder).
		Post(os.Getenv("PAYMENT_API_URL") + "/api/Transactions/SubmitOrderRequest")

	if err != nil {
		return "", "", err
	}
	if resp.StatusCode() != 200 {
		return "", "", fmt.Errorf("gateway order submission failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var gatewayResp map[string]any
	if err := json.Unmarshal(resp.Body(), &gatewayResp); err != nil {
		return "", "", fmt.Errorf("invalid response from payment gateway: %w", err)
	}

	redirectURL, rOK := gatewayResp["redirect_url"].(string)
	trackingID, tOK := gatewayResp["order_tracking_id"].(string)
	if !rOK || !tOK || redirectURL == "" || trackingID == "" {
		return "", "", fmt.Errorf("incomplete response from payment gateway: %v", gatewayResp)
	}

	return redirectURL, trackingID, nil
}

// HandlePaymentIPN receives the gateway's payment notification, re-queries
// the authoritative transaction status and records it on the order.
func HandlePaymentIPN(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var trackingID, merchantRef string

		if ctx.Request.Method == http.MethodPost {
			var payload struct {
				OrderTrackingId        string `json:"OrderTrackingId"`
				OrderMerchantReference string `json:"OrderMerchantReference"`
			}
			if err := ctx.BindJSON(&payload); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
				return
			}
			trackingID = payload.OrderTrackingId
			merchantRef = payload.OrderMerchantReference
		} else {
			trackingID = ctx.Query("orderTrackingId")
			merchantRef = ctx.Query("orderMerchantReference")
		}

		if trackingID == "" || merchantRef == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing parameters"})
			return
		}

		token, err := getGatewayAccessToken()
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication with payment gateway failed"})
			return
		}

		statusURL := os.Getenv("PAYMENT_API_URL") + "/api/Transactions/GetTransactionStatus?orderTrackingId=" + trackingID

		resp, err := resty.New().R().
			SetHeader("Authorization", "Bearer "+token).
			SetHeader("Accept", "application/json").
			Get(statusURL)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
			return
		}

		var statusResp map[string]any
		if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid response from payment gateway"})
			return
		}

		if errObj, exists := statusResp["error"]; exists && errObj != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error in transaction response"})
			return
		}

		statusDesc := fmt.Sprint(statusResp["payment_status_description"])

		if err := db.Model(&models.Order{}).
			Where("gateway_tracking_id = ?", trackingID).
			Update("payment_status", statusDesc).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"orderNotificationType":  "IPNCHANGE",
			"orderTrackingId":        trackingID,
			"orderMerchantReference": merchantRef,
			"status":                 200,
		})
	}
}
