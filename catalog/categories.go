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
	"neonpet/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCategories lists all categories ordered by name.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := db.CategoryCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("GetCategories Find error:", err)
		http.Error(w, "Could not retrieve categories", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		log.Println("GetCategories cursor.All error:", err)
		http.Error(w, "Error reading categories", http.StatusInternalServerError)
		return
	}
	if len(categories) == 0 {
		categories = []models.Category{}
	}

	utils.RespondWithJSON(w, http.StatusOK, categories)
}

// CreateCategory inserts a new category. Admin only (enforced in routes).
func CreateCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		log.Println("CreateCategory decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if category.Name == "" {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	category.CategoryID = "c" + utils.GenerateID(10)
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}

	if _, err := db.CategoryCollection.InsertOne(ctx, category); err != nil {
		log.Println("CreateCategory InsertOne error:", err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	mq.Emit("category-created", mq.Event{EntityType: "category", EntityId: category.CategoryID})

	utils.RespondWithJSON(w, http.StatusCreated, category)
}
