package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"neonpet/db"
	"neonpet/models"
	"neonpet/mq"
	"neonpet/pricing"
	"neonpet/rdx"
	"neonpet/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productCacheTTL = 5 * time.Minute

// GetProductsByCategory lists a category's active products, each carrying its
// currently effective price and discount. The raw product list is cached in
// Redis per category; resolved prices are computed per request since the
// offer window depends on the clock.
func GetProductsByCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	slug := ps.ByName("slug")

	var category models.Category
	if err := db.CategoryCollection.FindOne(ctx, bson.M{"slug": slug}).Decode(&category); err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	products, err := loadProducts(ctx, category.CategoryID)
	if err != nil {
		log.Println("GetProductsByCategory load error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, pricing.View(p, now))
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"products": views,
	})
}

func loadProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	cacheKey := "catalog:products:" + categoryID
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		var products []models.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.ProductCollection.Find(ctx, bson.M{"categoryid": categoryID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		products = []models.Product{}
	}

	if data, err := json.Marshal(products); err == nil {
		if err := rdx.SetWithExpiry(cacheKey, string(data), productCacheTTL); err != nil {
			log.Println("product cache write failed:", err)
		}
	}

	return products, nil
}

// GetProduct returns a single product with resolved pricing.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, pricing.View(product, time.Now()))
}

// CreateProduct inserts a new product. Admin only (enforced in routes).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Println("CreateProduct decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if product.Name == "" || product.CategoryID == "" || product.Price <= 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}
	if product.DiscountPercentage < 0 || product.DiscountPercentage > 100 {
		http.Error(w, "Discount must be between 0 and 100", http.StatusBadRequest)
		return
	}
	if product.Stock < 0 {
		http.Error(w, "Stock cannot be negative", http.StatusBadRequest)
		return
	}

	product.ProductID = "p" + utils.GenerateID(10)
	product.CreatedBy = utils.GetUserIDFromRequest(r)
	product.CreatedAt = time.Now()
	product.IsActive = true

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}

	mq.Emit("product-created", mq.Event{EntityType: "product", EntityId: product.ProductID, ItemId: product.CategoryID})

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// DeleteProduct removes a product. Admin only (enforced in routes).
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("productid")

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	if _, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productid": productID}); err != nil {
		log.Println("DeleteProduct DeleteOne error:", err)
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}

	mq.Emit("product-deleted", mq.Event{EntityType: "product", EntityId: productID, ItemId: product.CategoryID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
