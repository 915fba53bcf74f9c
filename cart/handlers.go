package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"neonpet/db"
	"neonpet/models"
	"neonpet/pricing"
	"neonpet/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Handler exposes one user-scoped Store per request via the registry.
type Handler struct {
	Registry *Registry
}

func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

// GetCart returns the caller's current items and aggregates.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, h.Registry.Get(userID).Summary())
}

// AddToCart resolves the product's effective price at add time and snapshots
// it into the cart. Re-adding an item only bumps its quantity.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ProductID string `json:"productid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ProductID == "" {
		http.Error(w, "Missing product id", http.StatusBadRequest)
		return
	}

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": payload.ProductID, "is_active": true}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if product.Stock <= 0 {
		http.Error(w, "Product out of stock", http.StatusConflict)
		return
	}

	price, discount := pricing.Resolve(product, time.Now())

	store := h.Registry.Get(userID)
	store.AddItem(models.CartItem{
		ProductID:     product.ProductID,
		Name:          product.Name,
		Price:         price,
		OriginalPrice: product.Price,
		Discount:      discount,
		ImageURL:      product.ImageURL,
		AddedAt:       time.Now(),
	})

	utils.RespondWithJSON(w, http.StatusCreated, store.Summary())
}

// UpdateQuantity sets a line's quantity; <=0 removes the line. Unknown ids
// leave the cart unchanged.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	store := h.Registry.Get(userID)
	store.UpdateQuantity(ps.ByName("productid"), payload.Quantity)

	utils.RespondWithJSON(w, http.StatusOK, store.Summary())
}

// RemoveItem deletes a line; absent ids are a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store := h.Registry.Get(userID)
	store.RemoveItem(ps.ByName("productid"))

	utils.RespondWithJSON(w, http.StatusOK, store.Summary())
}

// ClearCart empties the caller's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store := h.Registry.Get(userID)
	store.Clear()

	utils.RespondWithJSON(w, http.StatusOK, store.Summary())
}
