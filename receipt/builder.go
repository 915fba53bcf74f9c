package receipt

import (
	"bytes"
	"fmt"
	"time"

	"neonpet/models"

	"github.com/phpdave11/gofpdf"
)

// Layout constants. Item rows advance the cursor by linePitch; a discount
// annotation under a row adds annotationPitch. When the cursor passes
// breakAt a new page starts and the cursor resets to topMargin.
const (
	leftMargin      = 20.0
	rightEdge       = 190.0
	topMargin       = 20.0
	linePitch       = 7.0
	annotationPitch = 5.0
	breakAt         = 270.0
)

// Builder assembles the purchase summary PDF with a manual cursor so the
// page-break math stays testable independent of the rendering backend.
type Builder struct {
	pdf   *gofpdf.Fpdf
	y     float64
	pages int
}

func NewBuilder() *Builder {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	b := &Builder{pdf: pdf, pages: 1}

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 180, 180)
	pdf.CellFormat(0, 10, "NEON PET STORE", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, "Purchase Summary", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Date: "+time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")

	b.y = 50
	pdf.SetFont("Arial", "", 14)
	pdf.Text(leftMargin, b.y, "Products:")
	b.y += 10
	pdf.SetFont("Arial", "", 10)

	return b
}

// AddLine emits one item row (name, quantity, line total) and, when the item
// carries a discount, an indented annotation beneath it.
func (b *Builder) AddLine(item models.CartItem) {
	b.pdf.Text(leftMargin, b.y, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	b.rightText(b.y, fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity)))

	if item.Discount > 0 {
		b.pdf.SetTextColor(200, 0, 200)
		b.pdf.Text(leftMargin, b.y+annotationPitch, fmt.Sprintf("  Discount: %d%%", item.Discount))
		b.pdf.SetTextColor(0, 0, 0)
		b.y += annotationPitch
	}

	b.y += linePitch

	if b.y > breakAt {
		b.pdf.AddPage()
		b.pages++
		b.y = topMargin
		b.pdf.SetFont("Arial", "", 10)
	}
}

// AddTotalsBlock emits the separator line, subtotal, total discount (only
// when non-zero) and grand total, amounts right-aligned at the same margin.
func (b *Builder) AddTotalsBlock(subtotal, totalDiscount, total float64) {
	b.y += 5
	b.pdf.Line(leftMargin, b.y, rightEdge, b.y)
	b.y += 10

	b.pdf.SetFont("Arial", "", 11)
	b.pdf.Text(leftMargin, b.y, "Subtotal:")
	b.rightText(b.y, fmt.Sprintf("$%.2f", subtotal))
	b.y += linePitch

	if totalDiscount > 0 {
		b.pdf.SetTextColor(0, 160, 0)
		b.pdf.Text(leftMargin, b.y, "Total Discount:")
		b.rightText(b.y, fmt.Sprintf("-$%.2f", totalDiscount))
		b.pdf.SetTextColor(0, 0, 0)
		b.y += linePitch
	}

	b.pdf.SetFont("Arial", "B", 14)
	b.pdf.SetTextColor(0, 180, 180)
	b.pdf.Text(leftMargin, b.y, "TOTAL:")
	b.rightText(b.y, fmt.Sprintf("$%.2f", total))
	b.pdf.SetTextColor(0, 0, 0)
}

func (b *Builder) rightText(y float64, s string) {
	w := b.pdf.GetStringWidth(s)
	b.pdf.Text(rightEdge-w, y, s)
}

// Cursor reports the current vertical position, for layout tests.
func (b *Builder) Cursor() float64 { return b.y }

// Pages reports how many pages have been started.
func (b *Builder) Pages() int { return b.pages }

// Output renders the document.
func (b *Builder) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// Generate renders a complete receipt for a cart snapshot.
func Generate(summary models.CartSummary) ([]byte, error) {
	b := NewBuilder()
	for _, item := range summary.Items {
		b.AddLine(item)
	}
	b.AddTotalsBlock(summary.Subtotal, summary.TotalDiscount, summary.Total)
	return b.Output()
}

// Filename returns a collision-resistant download name for a receipt
// generated at t. Millisecond precision keeps two downloads in the same
// second apart.
func Filename(t time.Time) string {
	return fmt.Sprintf("neonpet-purchase-%d.pdf", t.UnixMilli())
}
