package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"reidossalgados/db"
	"reidossalgados/models"
	"reidossalgados/rdx"
	"reidossalgados/schedule"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	docID    = "store"
	cacheKey = "settings:store"
	cacheTTL = 2 * time.Minute
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
var phoneRe = regexp.MustCompile(`^[0-9]{10,15}$`)

var weekdayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// Handler serves the single store-settings document in `settings`.
type Handler struct {
	store    *db.Store
	cache    *rdx.Cache
	location *time.Location
}

func NewHandler(store *db.Store, cache *rdx.Cache, timezone string) *Handler {
	return &Handler{
		store:    store,
		cache:    cache,
		location: schedule.LoadLocation(timezone),
	}
}

func defaultSettings() models.StoreSettings {
	return models.StoreSettings{
		StoreName:    "Rei dos Salgados",
		Hours:        models.WeekHours{},
		DeliveryFees: []models.DeliveryFee{},
	}
}

// Load fetches the settings document, falling back to defaults when the
// collection is empty so the storefront always renders something.
func (h *Handler) Load(ctx context.Context) models.StoreSettings {
	if cached := h.cache.Get(ctx, cacheKey); cached != "" {
		var s models.StoreSettings
		if err := json.Unmarshal([]byte(cached), &s); err == nil {
			return s
		}
	}

	var s models.StoreSettings
	err := h.store.Settings.FindOne(ctx, bson.M{"_id": docID}).Decode(&s)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("settings read error:", err)
		}
		// Missing or unreadable settings: conservative defaults, and the
		// empty hours table reads as closed.
		return defaultSettings()
	}

	if payload, err := json.Marshal(s); err == nil {
		h.cache.Set(ctx, cacheKey, string(payload), cacheTTL)
	}
	return s
}

// Location is the store's civil timezone, shared with the orders handler.
func (h *Handler) Location() *time.Location {
	return h.location
}

// Get returns the store settings. Public: the storefront needs hours, fees
// and the WhatsApp number to render checkout.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	utils.RespondWithJSON(w, http.StatusOK, h.Load(ctx))
}

// Status runs the availability gate against the configured hours. Public.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s := h.Load(ctx)
	utils.RespondWithJSON(w, http.StatusOK, schedule.Evaluate(s.Hours, time.Now(), h.location))
}

// Update replaces the settings document. Admin only.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body models.StoreSettings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validate(body); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	body.UpdatedAt = time.Now()

	_, err := h.store.Settings.ReplaceOne(ctx, bson.M{"_id": docID}, body,
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save settings")
		return
	}
	h.cache.Del(ctx, cacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "data": body})
}

func validate(s models.StoreSettings) string {
	if s.StoreName == "" {
		return "Store name is required."
	}
	if s.WhatsApp != "" && !phoneRe.MatchString(s.WhatsApp) {
		return "WhatsApp number must be 10-15 digits, country code included."
	}
	for day, hours := range s.Hours {
		if !weekdayNames[day] {
			return "Unknown weekday: " + day
		}
		if !hours.Open {
			continue
		}
		if !hhmmRe.MatchString(hours.Start) || !hhmmRe.MatchString(hours.End) {
			return "Hours for " + day + " must be HH:MM."
		}
		if hours.Start > hours.End {
			return "Hours for " + day + " must not cross midnight."
		}
	}
	for _, fee := range s.DeliveryFees {
		if fee.District == "" {
			return "Delivery fee district is required."
		}
		if fee.Fee < 0 {
			return "Delivery fee must not be negative."
		}
	}
	if s.MinimumOrder < 0 {
		return "Minimum order must not be negative."
	}
	return ""
}
