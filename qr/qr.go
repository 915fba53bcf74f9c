package qr

import (
	"net/http"
	"os"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

func catalogURL() string {
	if u := os.Getenv("CATALOG_URL"); u != "" {
		return u
	}
	return "http://localhost:8080/home"
}

// CatalogQR serves a PNG QR code pointing at the public catalog, for printing
// or sharing.
func CatalogQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	png, err := qrcode.Encode(catalogURL(), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=catalog-qr.png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
