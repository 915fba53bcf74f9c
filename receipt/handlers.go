package receipt

import (
	"log"
	"net/http"
	"time"

	"neonpet/cart"
	"neonpet/mq"
	"neonpet/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler renders the caller's cart as a downloadable PDF.
type Handler struct {
	Registry *cart.Registry
}

func NewHandler(reg *cart.Registry) *Handler {
	return &Handler{Registry: reg}
}

func (h *Handler) Download(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary := h.Registry.Get(userID).Summary()
	if len(summary.Items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	pdfBytes, err := Generate(summary)
	if err != nil {
		log.Println("Receipt generation error:", err)
		http.Error(w, "Failed to generate receipt", http.StatusInternalServerError)
		return
	}

	mq.Emit("receipt-generated", mq.Event{EntityType: "receipt", EntityId: userID})

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+Filename(time.Now()))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
