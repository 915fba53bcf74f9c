package pricing

import (
	"math"
	"testing"
	"time"

	"neonpet/models"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestResolve(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		product      models.Product
		wantPrice    float64
		wantDiscount int
	}{
		{
			name:         "inactive offer keeps list price",
			product:      models.Product{Price: 100, DiscountPercentage: 20, OfferActive: false},
			wantPrice:    100,
			wantDiscount: 0,
		},
		{
			name:         "zero percent discount keeps list price",
			product:      models.Product{Price: 100, DiscountPercentage: 0, OfferActive: true},
			wantPrice:    100,
			wantDiscount: 0,
		},
		{
			name: "future start date not yet in effect",
			product: models.Product{
				Price: 100, DiscountPercentage: 20, OfferActive: true,
				OfferStartDate: ts("2025-07-01T00:00:00Z"),
			},
			wantPrice:    100,
			wantDiscount: 0,
		},
		{
			name: "past end date expired",
			product: models.Product{
				Price: 100, DiscountPercentage: 20, OfferActive: true,
				OfferEndDate: ts("2025-06-01T00:00:00Z"),
			},
			wantPrice:    100,
			wantDiscount: 0,
		},
		{
			name:         "active offer without dates",
			product:      models.Product{Price: 100, DiscountPercentage: 20, OfferActive: true},
			wantPrice:    80,
			wantDiscount: 20,
		},
		{
			name: "active window applies discount",
			product: models.Product{
				Price: 50, DiscountPercentage: 10, OfferActive: true,
				OfferStartDate: ts("2025-06-01T00:00:00Z"),
				OfferEndDate:   ts("2025-07-01T00:00:00Z"),
			},
			wantPrice:    45,
			wantDiscount: 10,
		},
		{
			name: "now exactly at start is honored",
			product: models.Product{
				Price: 100, DiscountPercentage: 25, OfferActive: true,
				OfferStartDate: ts("2025-06-15T12:00:00Z"),
			},
			wantPrice:    75,
			wantDiscount: 25,
		},
		{
			name: "now exactly at end is honored",
			product: models.Product{
				Price: 100, DiscountPercentage: 25, OfferActive: true,
				OfferEndDate: ts("2025-06-15T12:00:00Z"),
			},
			wantPrice:    75,
			wantDiscount: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, discount := Resolve(tt.product, now)
			if math.Abs(price-tt.wantPrice) > 1e-9 {
				t.Errorf("price = %v, want %v", price, tt.wantPrice)
			}
			if discount != tt.wantDiscount {
				t.Errorf("discount = %d, want %d", discount, tt.wantDiscount)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	p := models.Product{
		Price: 100, DiscountPercentage: 20, OfferActive: true,
		OfferStartDate: ts("2025-06-01T00:00:00Z"),
		OfferEndDate:   ts("2025-07-01T00:00:00Z"),
	}

	p1, d1 := Resolve(p, now)
	for i := 0; i < 10; i++ {
		p2, d2 := Resolve(p, now)
		if p1 != p2 || d1 != d2 {
			t.Fatalf("Resolve not deterministic: (%v,%d) then (%v,%d)", p1, d1, p2, d2)
		}
	}
}
