package models

import "gorm.io/gorm"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	gorm.Model
	Reference         string      `json:"reference" gorm:"uniqueIndex"`
	UserID            uint        `json:"userId"`
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	Email             string      `json:"email"`
	Phone             string      `json:"phone"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	ZipCode           string      `json:"zipCode"`
	PaymentMethod     string      `json:"paymentMethod"`
	Coupon            string      `json:"coupon"`
	Subtotal          float64     `json:"subtotal"`
	Discount          float64     `json:"discount"`
	Tax               float64     `json:"tax"`
	Shipping          float64     `json:"shipping"`
	Total             float64     `json:"total"`
	Status            string      `json:"status"`
	PaymentStatus     string      `json:"paymentStatus"`
	GatewayTrackingID string      `json:"gatewayTrackingId"`
	Items             []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a snapshot: name and price are copied from the catalog at
// checkout time so later price edits do not rewrite order history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CheckoutItem struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CheckoutInput struct {
	FirstName     string         `json:"firstName" binding:"required"`
	LastName      string         `json:"lastName" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Phone         string         `json:"phone" binding:"required"`
	Address       string         `json:"address" binding:"required"`
	City          string         `json:"city" binding:"required"`
	State         string         `json:"state" binding:"required"`
	ZipCode       string         `json:"zipCode" binding:"required"`
	PaymentMethod string         `json:"paymentMethod" binding:"required,oneof=cod online"`
	Coupon        string         `json:"coupon"`
	Items         []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	Total         float64        `json:"total"`
}
