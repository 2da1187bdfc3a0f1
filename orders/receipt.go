package orders

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"ukulima/db"
	"ukulima/models"
	"ukulima/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadReceipt handles GET /api/orders/order/:id/receipt. Participants only.
func DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := findOrder(ctx, ps.ByName("id"))
	if err != nil {
		respondOrderError(w, err)
		return
	}
	if _, err := ActorFor(order, userID); err != nil {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to view this order")
		return
	}

	productNames := lookupProductNames(ctx, order.Items)

	qrCode, _ := qrcode.Encode(order.OrderNumber, qrcode.Medium, 128)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Ukulima Order Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Order: %s\nPlaced: %s\nStatus: %s\nPayment: %s (%s)",
		order.OrderNumber,
		order.CreatedAt.Format("02 Jan 2006 15:04"),
		order.Status,
		order.PaymentStatus,
		order.PaymentMethod,
	), "", "L", false)
	pdf.Ln(4)

	// line items
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Total", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		name := productNames[item.Product]
		if name == "" {
			name = item.Product
		}
		pdf.CellFormat(90, 8, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.Price*float64(item.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(145, 10, "Total Amount", "T", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", order.TotalAmount), "T", 1, "R", false, 0, "")

	imgOpts := gofpdf.ImageOptions{ImageType: "png"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrCode))
	pdf.ImageOptions("qr", 150, 20, 35, 35, false, imgOpts, 0, "")

	pdf.SetY(-25)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Mpesa references are recorded as given and not verified by this receipt.", "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("receipt pdf error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderNumber+".pdf")
	w.Write(buf.Bytes())
}

func lookupProductNames(ctx context.Context, items []models.OrderItem) map[string]string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.Product
	}
	names := make(map[string]string, len(ids))
	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductCollection, bson.M{"productid": bson.M{"$in": ids}})
	if err != nil {
		log.Printf("receipt product lookup error: %v", err)
		return names
	}
	for _, p := range products {
		names[p.ProductID] = p.Name
	}
	return names
}
