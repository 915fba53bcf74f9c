package pricing

import (
	"time"

	"neonpet/models"
)

// Resolve returns the unit price and discount percentage in effect for a
// product at the given instant. The offer window is checked with strict
// comparisons: an offer that starts or ends exactly at now is still honored.
func Resolve(p models.Product, now time.Time) (float64, int) {
	if !p.OfferActive || p.DiscountPercentage == 0 {
		return p.Price, 0
	}
	if p.OfferStartDate != nil && now.Before(*p.OfferStartDate) {
		return p.Price, 0
	}
	if p.OfferEndDate != nil && now.After(*p.OfferEndDate) {
		return p.Price, 0
	}
	price := p.Price * (1 - float64(p.DiscountPercentage)/100)
	return price, p.DiscountPercentage
}

// View pairs a product with its currently effective price and discount.
func View(p models.Product, now time.Time) models.ProductView {
	price, discount := Resolve(p, now)
	return models.ProductView{
		Product:           p,
		EffectivePrice:    price,
		EffectiveDiscount: discount,
	}
}
