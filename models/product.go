package models

import "time"

// Category groups products on the storefront.
type Category struct {
	CategoryID  string `json:"categoryid" bson:"categoryid"`
	Name        string `json:"name" bson:"name"`
	Slug        string `json:"slug" bson:"slug"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Product is a catalog entry. The offer fields describe an optional
// time-windowed discount; pricing.Resolve decides whether it is in effect.
type Product struct {
	ProductID          string     `json:"productid" bson:"productid"`
	CategoryID         string     `json:"categoryid" bson:"categoryid"`
	Name               string     `json:"name" bson:"name"`
	Description        string     `json:"description,omitempty" bson:"description,omitempty"`
	Price              float64    `json:"price" bson:"price"`
	DiscountPercentage int        `json:"discount_percentage" bson:"discount_percentage"`
	OfferActive        bool       `json:"offer_active" bson:"offer_active"`
	OfferStartDate     *time.Time `json:"offer_start_date,omitempty" bson:"offer_start_date,omitempty"`
	OfferEndDate       *time.Time `json:"offer_end_date,omitempty" bson:"offer_end_date,omitempty"`
	Stock              int        `json:"stock" bson:"stock"`
	IsActive           bool       `json:"is_active" bson:"is_active"`
	ImageURL           string     `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedBy          string     `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt          time.Time  `json:"createdAt" bson:"createdAt"`
}

// ProductView is a Product plus the price/discount currently in effect.
type ProductView struct {
	Product
	EffectivePrice    float64 `json:"effective_price"`
	EffectiveDiscount int     `json:"effective_discount"`
}
