package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"reidossalgados/db"
	"reidossalgados/models"
	"reidossalgados/rdx"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheKey = "categories:all"
const cacheTTL = 5 * time.Minute

// Handler serves the `categories` collection. The storefront sorts by the
// persisted `order` index, which the admin panel rewrites on drag-reorder.
type Handler struct {
	store *db.Store
	cache *rdx.Cache
}

func NewHandler(store *db.Store, cache *rdx.Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

// List returns all categories sorted by their order index. Public, cached.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached := h.cache.Get(ctx, cacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	cats, err := utils.FindAndDecode[models.Category](ctx, h.store.Categories, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	if len(cats) == 0 {
		cats = []models.Category{}
	}

	if payload, err := json.Marshal(cats); err == nil {
		h.cache.Set(ctx, cacheKey, string(payload), cacheTTL)
	}
	utils.RespondWithJSON(w, http.StatusOK, cats)
}

// Create appends a category at the end of the current ordering. Admin only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name   string `json:"name"`
		Active *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(body.Name) == 0 || len(body.Name) > 60 {
		utils.RespondWithError(w, http.StatusBadRequest, "Name must be between 1 and 60 characters.")
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}

	cat := models.Category{
		CategoryID: utils.GenerateRandomString(14),
		Name:       body.Name,
		Order:      h.nextOrderIndex(ctx),
		Active:     active,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := h.store.Categories.InsertOne(ctx, cat); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert category")
		return
	}
	h.cache.Del(ctx, cacheKey)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true, "data": cat})
}

// Update renames or toggles a category. Admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name   string `json:"name"`
		Active *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if body.Name != "" {
		update["name"] = body.Name
	}
	if body.Active != nil {
		update["active"] = *body.Active
	}

	res, err := h.store.Categories.UpdateOne(ctx,
		bson.M{"categoryid": ps.ByName("categoryid")},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	h.cache.Del(ctx, cacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Delete removes a category. Items still pointing at it keep their
// categoryid and simply stop being listed under any category. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.store.Categories.DeleteOne(ctx, bson.M{"categoryid": ps.ByName("categoryid")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Category not found")
		return
	}
	h.cache.Del(ctx, cacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Reorder persists a full ordering: the request body is the category ids in
// their new display order, and each gets its position as the order index.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Order []string `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(body.Order) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order list is required")
		return
	}
	if hasDuplicates(body.Order) {
		utils.RespondWithError(w, http.StatusBadRequest, "Order list contains duplicates")
		return
	}

	writes := make([]mongo.WriteModel, 0, len(body.Order))
	for idx, id := range body.Order {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"categoryid": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": idx, "updatedAt": time.Now()}}))
	}
	if _, err := h.store.Categories.BulkWrite(ctx, writes); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to reorder categories")
		return
	}
	h.cache.Del(ctx, cacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) nextOrderIndex(ctx context.Context) int {
	var last models.Category
	err := h.store.Categories.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})).Decode(&last)
	if err != nil {
		return 0
	}
	return last.Order + 1
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}
