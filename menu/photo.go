package menu

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"reidossalgados/models"
	"reidossalgados/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const maxPhotoBytes = 10 << 20

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// UploadPhoto stores an item photo and a storefront thumbnail. The photo is
// re-encoded as JPEG, so whatever the admin uploads comes out a predictable
// size and format.
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	menuID := ps.ByName("menuid")

	var item models.MenuItem
	if err := h.store.Menu.FindOne(ctx, bson.M{"menuid": menuID}).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing photo file")
		return
	}
	defer file.Close()

	if !supportedImageTypes[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, GIF.")
		return
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not decode image")
		return
	}

	picDir := filepath.Join(h.staticDir, "menupic")
	thumbDir := filepath.Join(picDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to prepare upload directory")
		return
	}

	name := fmt.Sprintf("%s.jpg", menuID)
	full := imaging.Fit(img, 1024, 1024, imaging.Lanczos)
	if err := imaging.Save(full, filepath.Join(picDir, name), imaging.JPEGQuality(85)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumb := imaging.Fill(img, 320, 320, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, name), imaging.JPEGQuality(80)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	photoPath := "/static/menupic/" + name
	_, err = h.store.Menu.UpdateOne(ctx,
		bson.M{"menuid": menuID},
		bson.M{"$set": bson.M{"photo": photoPath, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record photo")
		return
	}
	h.invalidate(ctx, item.CategoryID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"ok":    true,
		"photo": photoPath,
		"thumb": "/static/menupic/thumb/" + name,
	})
}
