package catalog

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"neonpet/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const productUploadDir = "./uploads/products"

func ensureDirExists(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// UploadProductImage accepts a multipart image, stores the original plus a
// 300px-wide thumbnail, and returns the public paths. Admin only (enforced
// in routes).
func UploadProductImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		http.Error(w, "Failed to decode image", http.StatusBadRequest)
		return
	}

	uniqueID := uuid.NewString()
	fileName := uniqueID + ".jpg"

	originalPath := filepath.Join(productUploadDir, fileName)
	thumbDir := filepath.Join(productUploadDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := ensureDirExists(productUploadDir); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return
	}
	if err := ensureDirExists(thumbDir); err != nil {
		http.Error(w, "Failed to create thumbnail directory", http.StatusInternalServerError)
		return
	}

	if err := imaging.Save(img, originalPath); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save image: %v", err), http.StatusInternalServerError)
		return
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		http.Error(w, "Failed to save thumbnail", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"image_url": "/uploads/products/" + fileName,
		"thumb_url": "/uploads/products/thumb/" + fileName,
	})
}
