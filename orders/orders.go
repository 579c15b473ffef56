package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"reidossalgados/db"
	"reidossalgados/models"
	"reidossalgados/notify"
	"reidossalgados/pricing"
	"reidossalgados/schedule"
	"reidossalgados/settings"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler serves the `pedidos` collection: public checkout and tracking,
// admin fulfillment.
type Handler struct {
	store    *db.Store
	hub      *notify.Hub
	settings *settings.Handler
}

func NewHandler(store *db.Store, hub *notify.Hub, settings *settings.Handler) *Handler {
	return &Handler{store: store, hub: hub, settings: settings}
}

type lineInput struct {
	MenuID    string           `json:"menuId"`
	Selection models.Selection `json:"selection"`
}

type orderInput struct {
	Customer      models.Customer `json:"customer"`
	Delivery      bool            `json:"delivery"`
	Address       *models.Address `json:"address"`
	Items         []lineInput     `json:"items"`
	PaymentMethod string          `json:"paymentMethod"`
	ChangeFor     models.Cents    `json:"changeFor"`
}

var paymentMethods = map[string]bool{
	"pix":  true,
	"cash": true,
	"card": true,
}

// Create places an order. The client sends only item ids and selections;
// unit prices, the delivery fee and the total are recomputed here so a
// tampered cart cannot buy anything below the listed price.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body orderInput
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if body.Customer.Name == "" || body.Customer.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Customer name and phone are required")
		return
	}
	if len(body.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Order has no items")
		return
	}
	if !paymentMethods[body.PaymentMethod] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}
	if body.Delivery && (body.Address == nil || body.Address.Street == "" || body.Address.District == "") {
		utils.RespondWithError(w, http.StatusBadRequest, "Delivery orders need a street and district")
		return
	}

	cfg := h.settings.Load(ctx)

	// Availability gate: no checkout while the store is closed.
	status := schedule.Evaluate(cfg.Hours, time.Now(), h.settings.Location())
	if !status.IsOpen {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"error":       "Store is closed",
			"nextOpening": status.NextOpening,
		})
		return
	}

	items, errMsg := h.priceItems(ctx, body.Items)
	if errMsg != "" {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, errMsg)
		return
	}

	var deliveryFee models.Cents
	if body.Delivery {
		fee, ok := cfg.FeeFor(body.Address.District)
		if !ok {
			utils.RespondWithError(w, http.StatusUnprocessableEntity,
				"Delivery is not available for district "+body.Address.District)
			return
		}
		deliveryFee = fee
	}

	subtotal := pricing.OrderTotal(items, 0)
	if cfg.MinimumOrder > 0 && subtotal < cfg.MinimumOrder {
		utils.RespondWithJSON(w, http.StatusUnprocessableEntity, utils.M{
			"error":        "Order is below the minimum",
			"minimumOrder": cfg.MinimumOrder,
		})
		return
	}

	order := models.Order{
		OrderID:       utils.GenerateRandomDigitString(8),
		Customer:      body.Customer,
		Delivery:      body.Delivery,
		Address:       body.Address,
		Items:         items,
		PaymentMethod: body.PaymentMethod,
		ChangeFor:     body.ChangeFor,
		DeliveryFee:   deliveryFee,
		Total:         pricing.OrderTotal(items, deliveryFee),
		Status:        models.StatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if !order.Delivery {
		order.Address = nil
	}

	if _, err := h.store.Orders.InsertOne(ctx, order); err != nil {
		log.Println("order insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	h.hub.OrderCreated(order)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"ok":       true,
		"order":    order,
		"whatsapp": Link(cfg.WhatsApp, BuildMessage(order)),
	})
}

// priceItems resolves every line against the live menu. The second return
// value is a user-facing error message, empty on success.
func (h *Handler) priceItems(ctx context.Context, lines []lineInput) ([]models.OrderItem, string) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.MenuID == "" {
			return nil, "Order line is missing its menu item"
		}
		if line.Selection.Quantity < 1 {
			return nil, "Order line quantity must be at least 1"
		}

		var item models.MenuItem
		err := h.store.Menu.FindOne(ctx, bson.M{"menuid": line.MenuID}).Decode(&item)
		if err != nil {
			return nil, "Menu item not found: " + line.MenuID
		}
		if !item.Available {
			return nil, item.Name + " is not available right now"
		}

		unit := pricing.ResolveUnitPrice(item, line.Selection)
		items = append(items, models.OrderItem{
			MenuID:    item.MenuID,
			Name:      item.Name,
			Selection: line.Selection,
			UnitPrice: unit,
			LineTotal: pricing.LineTotal(unit, line.Selection.Quantity),
		})
	}
	return items, ""
}

// Track returns one order by id. Public: customers poll this from the
// tracking page with the id they got at checkout.
func (h *Handler) Track(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := h.store.Orders.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// List returns orders for the admin panel, newest first, optionally
// filtered by ?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidStatus(status) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
			return
		}
		filter["status"] = status
	}

	orders, err := utils.FindAndDecode[models.Order](ctx, h.store.Orders, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(200))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// UpdateStatus advances an order along the fulfillment flow. Admin only.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	orderID := ps.ByName("orderid")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !models.ValidStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown status")
		return
	}

	var order models.Order
	err := h.store.Orders.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if !models.CanTransition(order.Status, body.Status) {
		utils.RespondWithJSON(w, http.StatusConflict, utils.M{
			"error": "Cannot move order from " + order.Status + " to " + body.Status,
		})
		return
	}

	_, err = h.store.Orders.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": order.Status},
		bson.M{"$set": bson.M{"status": body.Status, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	order.Status = body.Status
	h.hub.OrderUpdated(order)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": body.Status})
}
