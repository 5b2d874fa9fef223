package products

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"vastra/db"
	"vastra/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "./static/productpic"

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadImage saves a catalog image plus a 300px thumbnail and appends the
// filename to the product's image list.
func UploadImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID := ps.ByName("id")
	count, err := db.ProductCollection.CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Error parsing form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image upload failed")
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP.")
		return
	}

	if err := os.MkdirAll(productPicDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	name := utils.GetUUID() + ".jpg"
	destPath := filepath.Join(productPicDir, name)

	out, err := os.Create(destPath)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	out.Close()

	if err := createThumbnail(destPath, filepath.Join(productPicDir, "thumb_"+name)); err != nil {
		log.Println("UploadImage thumbnail error:", err)
	}

	_, err = db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{
			"$push": bson.M{"images": name},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach image")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"image": fmt.Sprintf("/static/productpic/%s", name),
	})
}

func createThumbnail(inputPath, outputPath string) error {
	img, err := imaging.Open(inputPath)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos) // maintain aspect ratio
	return imaging.Save(thumb, outputPath)
}
