package models

import "time"

// CartItem is a single line in a user's cart. Price is the unit price
// actually charged (post-discount); OriginalPrice and Discount are the
// snapshot taken when the item was first added.
type CartItem struct {
	ProductID     string    `json:"productid"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"originalPrice"`
	Discount      int       `json:"discount"`
	Quantity      int       `json:"quantity"`
	ImageURL      string    `json:"image_url,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

// CartSummary is what the cart endpoints return: current items plus the
// aggregates recomputed from them.
type CartSummary struct {
	Items         []CartItem `json:"items"`
	TotalItems    int        `json:"totalItems"`
	Subtotal      float64    `json:"subtotal"`
	TotalDiscount float64    `json:"totalDiscount"`
	Total         float64    `json:"total"`
}
