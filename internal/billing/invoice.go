package billing

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

// Business identifies the seller printed on invoices.
type Business struct {
	Name    string
	Address string
	Phone   string
}

// PaymentPayload is the text encoded in the invoice QR code.
func PaymentPayload(bill domain.Bill) string {
	return fmt.Sprintf("%s|%.2f", bill.ID, bill.Total)
}

// RenderInvoice writes bill as a single page A4 PDF.
func RenderInvoice(w io.Writer, bill domain.Bill, business Business) error {
	qr, err := qrcode.Encode(PaymentPayload(bill), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode payment qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+bill.ID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, business.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if business.Address != "" {
		pdf.CellFormat(0, 5, business.Address, "", 1, "L", false, 0, "")
	}
	if business.Phone != "" {
		pdf.CellFormat(0, 5, "Phone: "+business.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Invoice "+bill.ID, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Date: "+bill.Date.Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Customer: "+bill.Customer.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+bill.Customer.Phone, "", 1, "L", false, 0, "")
	if bill.Customer.Address != "" {
		pdf.CellFormat(0, 5, "Address: "+bill.Customer.Address, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(130, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Price (Rs.)", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range bill.Products {
		pdf.CellFormat(130, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, money(item.Price), "1", 1, "R", false, 0, "")
	}

	totalRow := func(label string, value float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(130, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, money(value), "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", bill.Subtotal, false)
	totalRow("GST (18%)", bill.GST, false)
	totalRow("Total", bill.Total, true)

	pdf.RegisterImageOptionsReader("payment-qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qr))
	pdf.ImageOptions("payment-qr", 150, pdf.GetY()+8, 40, 40, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	return pdf.Output(w)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
