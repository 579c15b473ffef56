package orders

import (
	"strings"
	"testing"

	"reidossalgados/models"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderID:  "00123456",
		Customer: models.Customer{Name: "Maria", Phone: "5511988887777"},
		Delivery: true,
		Address: &models.Address{
			Street:   "Rua das Flores",
			Number:   "120",
			District: "Centro",
		},
		Items: []models.OrderItem{
			{
				Name: "Pizza Grande",
				Selection: models.Selection{
					Size:     "G",
					Border:   "Catupiry",
					Extras:   []string{"Bacon"},
					Quantity: 2,
				},
				UnitPrice: 1600,
				LineTotal: 3200,
			},
			{
				Name:      "Coxinha",
				Selection: models.Selection{Quantity: 5},
				UnitPrice: 500,
				LineTotal: 2500,
			},
		},
		PaymentMethod: "cash",
		ChangeFor:     10000,
		DeliveryFee:   700,
		Total:         6400,
		Status:        models.StatusPending,
	}
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage(sampleOrder())

	for _, want := range []string{
		"*Novo pedido #00123456*",
		"Cliente: Maria",
		"2x Pizza Grande (G, borda Catupiry, Bacon) - R$ 32,00",
		"5x Coxinha - R$ 25,00",
		"Rua das Flores, 120 - Centro",
		"Taxa de entrega: R$ 7,00",
		"Pagamento: Dinheiro",
		"Troco para: R$ 100,00",
		"*Total: R$ 64,00*",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\nmessage:\n%s", want, msg)
		}
	}
}

func TestBuildMessage_Pickup(t *testing.T) {
	order := sampleOrder()
	order.Delivery = false
	order.Address = nil
	order.PaymentMethod = "pix"
	order.ChangeFor = 0

	msg := BuildMessage(order)
	if !strings.Contains(msg, "Retirada no balcao") {
		t.Error("pickup order should mention counter pickup")
	}
	if strings.Contains(msg, "Taxa de entrega") {
		t.Error("pickup order should not mention a delivery fee")
	}
	if strings.Contains(msg, "Troco para") {
		t.Error("pix order should not mention change")
	}
}

func TestLink(t *testing.T) {
	link := Link("5511999999999", "Pedido #1 & total R$ 10,00")
	if !strings.HasPrefix(link, "https://wa.me/5511999999999?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.ContainsAny(link[len("https://wa.me/5511999999999?text="):], " &#") {
		t.Errorf("message part is not escaped: %s", link)
	}

	if Link("", "hi") != "" {
		t.Error("link without a store number should be empty")
	}
}
