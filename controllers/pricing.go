package controllers

import (
	"errors"
	"math"
)

// Canonical storefront pricing. Totals are always derived here, on the
// server, from catalog prices fetched inside the checkout transaction.
const (
	taxRate           = 0.05
	shippingFee       = 10
	freeShippingAbove = 500

	couponCode = "SAVE10"
	couponRate = 0.10

	// Maximum disagreement tolerated between the client-displayed total
	// and the server-computed one before the checkout is rejected.
	totalTolerance = 1.0
)

var errUnknownCoupon = errors.New("invalid coupon code")

type orderTotals struct {
	Subtotal float64
	Discount float64
	Tax      float64
	Shipping float64
	Total    float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func computeTotals(subtotal float64, coupon string) (orderTotals, error) {
	t := orderTotals{Subtotal: round2(subtotal)}

	if coupon != "" {
		if coupon != couponCode {
			return orderTotals{}, errUnknownCoupon
		}
		t.Discount = round2(t.Subtotal * couponRate)
	}

	taxable := t.Subtotal - t.Discount
	t.Tax = round2(taxable * taxRate)

	if t.Subtotal > 0 && t.Subtotal <= freeShippingAbove {
		t.Shipping = shippingFee
	}

	t.Total = round2(taxable + t.Tax + t.Shipping)
	return t, nil
}
