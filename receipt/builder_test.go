package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"neonpet/models"
)

func line(name string, qty, discount int) models.CartItem {
	return models.CartItem{
		ProductID: name,
		Name:      name,
		Price:     10,
		Quantity:  qty,
		Discount:  discount,
	}
}

func TestCursorAdvancesByLinePitch(t *testing.T) {
	b := NewBuilder()
	start := b.Cursor()

	b.AddLine(line("dog food", 1, 0))
	if got := b.Cursor(); got != start+linePitch {
		t.Fatalf("cursor = %v, want %v", got, start+linePitch)
	}

	// a discounted line spends an extra annotation row
	b.AddLine(line("cat toy", 2, 15))
	if got := b.Cursor(); got != start+2*linePitch+annotationPitch {
		t.Fatalf("cursor = %v, want %v", got, start+2*linePitch+annotationPitch)
	}
}

func TestPageBreakResetsCursor(t *testing.T) {
	b := NewBuilder()

	// enough undiscounted rows to push the cursor past the threshold
	for i := 0; b.Pages() == 1; i++ {
		if i > 100 {
			t.Fatal("page break never triggered")
		}
		b.AddLine(line("bulk item", 1, 0))
	}

	if b.Pages() != 2 {
		t.Fatalf("pages = %d, want 2", b.Pages())
	}
	if b.Cursor() != topMargin {
		t.Fatalf("cursor after break = %v, want %v", b.Cursor(), topMargin)
	}
	if b.Cursor() > breakAt {
		t.Fatal("cursor still past threshold after break")
	}
}

func TestSmallCartStaysOnOnePage(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 5; i++ {
		b.AddLine(line("treat", 1, 10))
	}
	b.AddTotalsBlock(50, 5, 45)

	if b.Pages() != 1 {
		t.Fatalf("pages = %d, want 1", b.Pages())
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	summary := models.CartSummary{
		Items: []models.CartItem{
			{ProductID: "a", Name: "Dog Food", Price: 80, OriginalPrice: 100, Discount: 20, Quantity: 2},
			{ProductID: "b", Name: "Cat Litter", Price: 50, OriginalPrice: 50, Quantity: 1},
		},
		TotalItems:    3,
		Subtotal:      250,
		TotalDiscount: 40,
		Total:         210,
	}

	out, err := Generate(summary)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestGenerateLargeCartPaginates(t *testing.T) {
	var items []models.CartItem
	for i := 0; i < 60; i++ {
		items = append(items, models.CartItem{
			ProductID: "p", Name: "Filler", Price: 1, OriginalPrice: 1, Quantity: 1,
		})
	}

	b := NewBuilder()
	for _, it := range items {
		b.AddLine(it)
	}
	if b.Pages() < 2 {
		t.Fatalf("expected pagination for %d rows, pages = %d", len(items), b.Pages())
	}
	b.AddTotalsBlock(60, 0, 60)

	if _, err := b.Output(); err != nil {
		t.Fatalf("Output: %v", err)
	}
}

func TestFilenameIsTimestampSuffixed(t *testing.T) {
	at := time.Unix(1735689600, 0)
	got := Filename(at)
	if !strings.HasPrefix(got, "neonpet-purchase-") || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("unexpected filename %q", got)
	}
	if !strings.Contains(got, "1735689600000") {
		t.Fatalf("filename %q missing millisecond timestamp", got)
	}
}

func TestFilenameDistinguishesSameSecond(t *testing.T) {
	base := time.Unix(1735689600, 0)
	a := Filename(base)
	b := Filename(base.Add(5 * time.Millisecond))
	if a == b {
		t.Fatalf("filenames collide within one second: %q", a)
	}
}
