package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"reidossalgados/models"
	"reidossalgados/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// Receipt renders a kitchen/delivery ticket as PDF. Admin only.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	orderID := ps.ByName("orderid")

	var order models.Order
	err := h.store.Orders.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	cfg := h.settings.Load(ctx)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("%s - Pedido #%s", cfg.StoreName, order.OrderID))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Cliente: %s  (%s)", order.Customer.Name, order.Customer.Phone))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Criado em: %s", order.CreatedAt.In(h.settings.Location()).Format("02/01/2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Itens")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		line := fmt.Sprintf("%dx %s", item.Selection.Quantity, item.Name)
		if mods := describeSelection(item.Selection); mods != "" {
			line += " (" + mods + ")"
		}
		pdf.Cell(140, 7, line)
		pdf.CellFormat(40, 7, item.LineTotal.BRL(), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(5)

	if order.Delivery && order.Address != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Entrega")
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 7, fmt.Sprintf("%s, %s - %s", order.Address.Street, order.Address.Number, order.Address.District))
		pdf.Ln(7)
		if order.Address.Complement != "" {
			pdf.Cell(0, 7, "Complemento: "+order.Address.Complement)
			pdf.Ln(7)
		}
		pdf.Cell(0, 7, "Taxa de entrega: "+order.DeliveryFee.BRL())
		pdf.Ln(10)
	} else {
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 8, "Retirada no balcao")
		pdf.Ln(10)
	}

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Pagamento: "+paymentLabel(order.PaymentMethod))
	pdf.Ln(7)
	if order.PaymentMethod == "cash" && order.ChangeFor > 0 {
		pdf.Cell(0, 7, "Troco para: "+order.ChangeFor.BRL())
		pdf.Ln(7)
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Total: "+order.Total.BRL())
	pdf.Ln(14)

	// QR of the WhatsApp handoff link, when the store has one configured.
	if link := Link(cfg.WhatsApp, BuildMessage(order)); link != "" {
		if png, err := qrcode.Encode(link, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("waqr", opts, bytes.NewReader(png))
			pdf.ImageOptions("waqr", pdf.GetX(), pdf.GetY(), 40, 40, false, opts, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=pedido-%s.pdf", orderID))
	w.Write(buf.Bytes())
}
