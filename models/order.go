package models

import "time"

// Order statuses. The flow is linear, with cancellation as the only branch:
// pending → preparing → ready → out-for-delivery → delivered.
const (
	StatusPending        = "pending"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out-for-delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// Selection holds the modifiers a customer picked for one line.
// Empty strings mean "not selected"; unknown keys never error, they just
// contribute nothing to the price.
type Selection struct {
	Size     string   `json:"size,omitempty" bson:"size,omitempty"`
	Flavor   string   `json:"flavor,omitempty" bson:"flavor,omitempty"`
	Border   string   `json:"border,omitempty" bson:"border,omitempty"`
	Extras   []string `json:"extras,omitempty" bson:"extras,omitempty"`
	Quantity int      `json:"quantity" bson:"quantity"`
}

// OrderItem is one line of a placed order. UnitPrice is the server-resolved
// price at the time the order was placed and is never recomputed afterwards.
type OrderItem struct {
	MenuID    string    `json:"menuId" bson:"menuid"`
	Name      string    `json:"name" bson:"name"`
	Selection Selection `json:"selection" bson:"selection"`
	UnitPrice Cents     `json:"unitPrice" bson:"unitPrice"`
	LineTotal Cents     `json:"lineTotal" bson:"lineTotal"`
}

type Customer struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

type Address struct {
	Street     string `json:"street" bson:"street"`
	Number     string `json:"number" bson:"number"`
	District   string `json:"district" bson:"district"`
	Complement string `json:"complement,omitempty" bson:"complement,omitempty"`
	Reference  string `json:"reference,omitempty" bson:"reference,omitempty"`
}

// Order is one entry of the `pedidos` collection.
type Order struct {
	OrderID       string      `json:"orderId" bson:"orderid"`
	Customer      Customer    `json:"customer" bson:"customer"`
	Delivery      bool        `json:"delivery" bson:"delivery"`
	Address       *Address    `json:"address,omitempty" bson:"address,omitempty"`
	Items         []OrderItem `json:"items" bson:"items"`
	PaymentMethod string      `json:"paymentMethod" bson:"paymentMethod"`
	ChangeFor     Cents       `json:"changeFor,omitempty" bson:"changeFor,omitempty"`
	DeliveryFee   Cents       `json:"deliveryFee" bson:"deliveryFee"`
	Total         Cents       `json:"total" bson:"total"`
	Status        string      `json:"status" bson:"status"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// nextStatus maps each state to the one that follows it in the fulfillment
// flow. Terminal states have no successor.
var nextStatus = map[string]string{
	StatusPending:        StatusPreparing,
	StatusPreparing:      StatusReady,
	StatusReady:          StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// ValidStatus reports whether s names a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another: one step forward along the linear flow, or to cancelled from any
// non-terminal state.
func CanTransition(from, to string) bool {
	if from == StatusDelivered || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return ValidStatus(from)
	}
	return nextStatus[from] == to
}
