package orders

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reidossalgados/models"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// BuildMessage renders the order as the WhatsApp text the customer sends to
// the store. This is the actual handoff channel: there is no payment or
// delivery integration behind it.
func BuildMessage(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido #%s*\n", order.OrderID)
	fmt.Fprintf(&b, "Cliente: %s\n\n", order.Customer.Name)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s", item.Selection.Quantity, item.Name)
		if mods := describeSelection(item.Selection); mods != "" {
			fmt.Fprintf(&b, " (%s)", mods)
		}
		fmt.Fprintf(&b, " - %s\n", item.LineTotal.BRL())
	}

	if order.Delivery && order.Address != nil {
		b.WriteString("\n*Entrega*\n")
		fmt.Fprintf(&b, "%s, %s - %s\n", order.Address.Street, order.Address.Number, order.Address.District)
		if order.Address.Complement != "" {
			fmt.Fprintf(&b, "Complemento: %s\n", order.Address.Complement)
		}
		if order.Address.Reference != "" {
			fmt.Fprintf(&b, "Referencia: %s\n", order.Address.Reference)
		}
		fmt.Fprintf(&b, "Taxa de entrega: %s\n", order.DeliveryFee.BRL())
	} else {
		b.WriteString("\n*Retirada no balcao*\n")
	}

	fmt.Fprintf(&b, "\nPagamento: %s\n", paymentLabel(order.PaymentMethod))
	if order.PaymentMethod == "cash" && order.ChangeFor > 0 {
		fmt.Fprintf(&b, "Troco para: %s\n", order.ChangeFor.BRL())
	}
	fmt.Fprintf(&b, "*Total: %s*", order.Total.BRL())

	return b.String()
}

func describeSelection(sel models.Selection) string {
	var parts []string
	if sel.Size != "" {
		parts = append(parts, sel.Size)
	}
	if sel.Flavor != "" {
		parts = append(parts, sel.Flavor)
	}
	if sel.Border != "" {
		parts = append(parts, "borda "+sel.Border)
	}
	parts = append(parts, sel.Extras...)
	return strings.Join(parts, ", ")
}

func paymentLabel(method string) string {
	switch method {
	case "pix":
		return "Pix"
	case "cash":
		return "Dinheiro"
	case "card":
		return "Cartao"
	}
	return method
}

// Link builds the wa.me deep link for a prefilled message. With no store
// number configured it returns "", and the storefront hides the button.
func Link(phone, message string) string {
	if phone == "" {
		return ""
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}

// WhatsAppLink returns the handoff link for an existing order, for the
// "send again" button on the tracking page.
func (h *Handler) WhatsAppLink(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := h.store.Orders.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	cfg := h.settings.Load(ctx)
	link := Link(cfg.WhatsApp, BuildMessage(order))
	if link == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Store has no WhatsApp number configured")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"link": link})
}

// QR renders the handoff link as a PNG, shown at the pickup counter so
// customers can scan instead of typing.
func (h *Handler) QR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err := h.store.Orders.FindOne(ctx, bson.M{"orderid": ps.ByName("orderid")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	cfg := h.settings.Load(ctx)
	link := Link(cfg.WhatsApp, BuildMessage(order))
	if link == "" {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Store has no WhatsApp number configured")
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
