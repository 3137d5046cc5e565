package utils

import (
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"hms/src/config"
	"hms/src/models"

	"github.com/go-pdf/fpdf"
	"github.com/yeqown/go-qrcode"
)

func tempDir() string {
	cfg := config.Load()
	if cfg.TempDir != "" {
		return cfg.TempDir
	}
	return os.TempDir()
}

// GenerateInvoicePDF renders a payment receipt. booking/room may be nil
// for service charges and fines; the booking section is then omitted.
// Returns the path of the written file.
func GenerateInvoicePDF(invoice *models.Invoice, booking *models.Booking, room *models.Room) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "HOSTEL MANAGEMENT SYSTEM", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	title := "Payment Receipt"
	if room != nil {
		title = "Room Booking Receipt"
	}
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Invoice ID: %s", invoice.InvoiceID), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("02/01/2006")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "BILL TO:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if booking != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Name: %s", booking.ResidentName), "", 1, "L", false, 0, "")
		if booking.ResidentMobile != "" {
			pdf.CellFormat(0, 6, fmt.Sprintf("Mobile: %s", booking.ResidentMobile), "", 1, "L", false, 0, "")
		}
		if booking.ResidentStreet != "" || booking.ResidentCity != "" {
			pdf.CellFormat(0, 6, fmt.Sprintf("Address: %s, %s", booking.ResidentStreet, booking.ResidentCity), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 6, fmt.Sprintf("%s - %s", booking.ResidentState, booking.ResidentPin), "", 1, "L", false, 0, "")
		}
	} else {
		pdf.CellFormat(0, 6, fmt.Sprintf("Student ID: %d", invoice.StudentID), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if room != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "BOOKING DETAILS:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Room Number: %s", room.RoomNumber), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Type: %s (%d Sharing)", room.Type, room.Capacity), "", 1, "L", false, 0, "")
		if booking != nil && booking.CheckInDate != nil {
			pdf.CellFormat(0, 6, fmt.Sprintf("Check-in Date: %s", booking.CheckInDate.Format("02/01/2006")), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(20, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(120, 8, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount (INR)", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, item := range invoice.Items {
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(120, 8, item.Description, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", item.Amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(140, 10, "Total Paid:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 10, fmt.Sprintf("Rs. %.2f", invoice.TotalAmount), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Payment Method: Razorpay (Verified)", "", 1, "R", false, 0, "")

	// QR carrying the gateway reference, so a receipt can be matched to
	// its payment at the desk.
	if booking != nil && booking.OrderID != nil {
		ref := *booking.OrderID
		if booking.PaymentID != nil {
			ref = fmt.Sprintf("%s|%s", ref, *booking.PaymentID)
		}
		qrPath := path.Join(tempDir(), fmt.Sprintf("receipt_%s.jpeg", invoice.InvoiceID))
		if qrc, err := qrcode.New(ref); err == nil {
			if err := qrc.Save(qrPath); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", qrPath, err.Error())
			} else {
				pdf.ImageOptions(qrPath, 160, 250, 30, 30, false, fpdf.ImageOptions{ImageType: "JPEG"}, 0, "")
			}
		}
	}

	pdf.SetY(-20)
	pdf.CellFormat(0, 6, "This is a computer-generated invoice.", "", 1, "C", false, 0, "")

	outPath := path.Join(tempDir(), fmt.Sprintf("invoice_%s.pdf", invoice.InvoiceID))
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}
