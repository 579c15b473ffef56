package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"reidossalgados/db"
	"reidossalgados/models"
	"reidossalgados/rdx"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cacheTTL = 5 * time.Minute

// Handler serves the `menu` collection. Public reads go through the redis
// cache; every write invalidates it.
type Handler struct {
	store     *db.Store
	cache     *rdx.Cache
	staticDir string
}

func NewHandler(store *db.Store, cache *rdx.Cache, staticDir string) *Handler {
	return &Handler{store: store, cache: cache, staticDir: staticDir}
}

type itemInput struct {
	CategoryID  string                  `json:"categoryId"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Price       models.Cents            `json:"price"`
	Sizes       map[string]models.Cents `json:"sizes"`
	Flavors     []models.Flavor         `json:"flavors"`
	Borders     map[string]models.Cents `json:"borders"`
	Extras      map[string]models.Cents `json:"extras"`
	Available   *bool                   `json:"available"`
}

func (in *itemInput) validate() string {
	if len(in.Name) == 0 || len(in.Name) > 100 {
		return "Name must be between 1 and 100 characters."
	}
	if in.CategoryID == "" {
		return "Category is required."
	}
	if in.Price < 0 {
		return "Invalid price value. Must be a non-negative amount."
	}
	for size, p := range in.Sizes {
		if size == "" || p < 0 {
			return "Invalid size entry."
		}
	}
	for _, f := range in.Flavors {
		if f.Name == "" || f.Price < 0 {
			return "Invalid flavor entry."
		}
	}
	for border, p := range in.Borders {
		if border == "" || p < 0 {
			return "Invalid border entry."
		}
	}
	for extra, p := range in.Extras {
		if extra == "" || p < 0 {
			return "Invalid extra entry."
		}
	}
	return ""
}

// Create inserts a menu item. Admin only.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body itemInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	available := true
	if body.Available != nil {
		available = *body.Available
	}

	item := models.MenuItem{
		MenuID:      utils.GenerateRandomString(14),
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Sizes:       body.Sizes,
		Flavors:     body.Flavors,
		Borders:     body.Borders,
		Extras:      body.Extras,
		Available:   available,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := h.store.Menu.InsertOne(ctx, item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert menu item")
		return
	}
	h.invalidate(ctx, item.CategoryID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":   true,
		"data": item,
	})
}

// List returns menu items, optionally filtered by ?category=. Public, cached.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	category := r.URL.Query().Get("category")
	cacheKey := listCacheKey(category)

	if cached := h.cache.Get(ctx, cacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	filter := bson.M{}
	if category != "" {
		filter["categoryid"] = category
	}
	items, err := utils.FindAndDecode[models.MenuItem](ctx, h.store.Menu, filter,
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch menu")
		return
	}
	if len(items) == 0 {
		items = []models.MenuItem{}
	}

	if payload, err := json.Marshal(items); err == nil {
		h.cache.Set(ctx, cacheKey, string(payload), cacheTTL)
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// Get returns a single menu item by id. Public.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.MenuItem
	err := h.store.Menu.FindOne(ctx, bson.M{"menuid": ps.ByName("menuid")}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

// Update replaces the editable fields of a menu item. Admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	menuID := ps.ByName("menuid")

	var body itemInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input data")
		return
	}
	if msg := body.validate(); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	update := bson.M{
		"categoryid":  body.CategoryID,
		"name":        body.Name,
		"description": body.Description,
		"price":       body.Price,
		"sizes":       body.Sizes,
		"flavors":     body.Flavors,
		"borders":     body.Borders,
		"extras":      body.Extras,
		"updatedAt":   time.Now(),
	}
	if body.Available != nil {
		update["available"] = *body.Available
	}

	res, err := h.store.Menu.UpdateOne(ctx, bson.M{"menuid": menuID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update menu item")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	h.invalidate(ctx, body.CategoryID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// SetAvailability flips only the available flag, the toggle the admin panel
// hits while items sell out during service.
func (h *Handler) SetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	var item models.MenuItem
	err := h.store.Menu.FindOneAndUpdate(ctx,
		bson.M{"menuid": ps.ByName("menuid")},
		bson.M{"$set": bson.M{"available": body.Available, "updatedAt": time.Now()}},
	).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	h.invalidate(ctx, item.CategoryID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "available": body.Available})
}

// Delete removes a menu item. Admin only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.MenuItem
	err := h.store.Menu.FindOneAndDelete(ctx, bson.M{"menuid": ps.ByName("menuid")}).Decode(&item)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Menu item not found")
		return
	}
	h.invalidate(ctx, item.CategoryID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) invalidate(ctx context.Context, categoryID string) {
	h.cache.Del(ctx, listCacheKey(""), listCacheKey(categoryID))
}

func listCacheKey(category string) string {
	if category == "" {
		return "menu:all"
	}
	return fmt.Sprintf("menu:cat:%s", category)
}
