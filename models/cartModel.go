package models

import "time"

// CartLine is the authoritative (user, product) -> quantity mapping.
// The composite unique index is what prevents duplicate lines when two
// add requests race for the same product. Deletes are hard deletes: a
// soft-deleted row would keep occupying the unique index.
type CartLine struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint      `json:"productId" gorm:"uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartEntry is a cart line joined with live product data at read time.
// Prices are deliberately not frozen at add time.
type CartEntry struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Subtotal  float64 `json:"subtotal"`
}
