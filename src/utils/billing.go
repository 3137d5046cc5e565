package utils

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hms/src/db"
	"hms/src/models"
	"hms/src/types"

	"gorm.io/gorm"
)

// CreateCharge adds a fine/service/utility invoice to a student's
// ledger. The invoice is the committed effect; notification and email
// are best effort.
func CreateCharge(params *types.CreateChargeRequestBody) (*models.Invoice, error) {
	d := db.GetDb()
	var student models.User
	if err := d.
		Model(&models.User{}).
		Where(&models.User{ID: params.StudentID}).
		First(&student).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student %d not found", params.StudentID)
		}
		return nil, err
	}

	dueDate := time.Now()
	if params.DueDate != nil {
		parsed, err := ParseDate(*params.DueDate)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %s", err.Error())
		}
		dueDate = parsed
	}

	invoice := models.Invoice{
		InvoiceID: NewInvoiceNumber(params.Type),
		StudentID: params.StudentID,
		Items: models.InvoiceItems{{
			Description: params.Description,
			Amount:      params.Amount,
		}},
		TotalAmount: params.Amount,
		Status:      types.INVOICE_PENDING,
		DueDate:     &dueDate,
	}
	if err := d.Create(&invoice).Error; err != nil {
		return nil, err
	}

	ntype := types.NOTIFY_PAYMENT
	if params.Type == "Fine" {
		ntype = types.NOTIFY_FINE
	}
	CreateNotification(params.StudentID, ntype,
		fmt.Sprintf("New %s of Rs. %.2f has been added: %s", params.Type, params.Amount, params.Description))

	if params.Type == "Fine" && student.Email != "" {
		go func() {
			if err := SendFineNotificationEmail(student.Email, student.Username, &invoice); err != nil {
				log.Printf("Could not send fine email for invoice %s: %s\n", invoice.InvoiceID, err.Error())
			}
		}()
	}
	return &invoice, nil
}

// ApplyCredit records a discount as a negative-amount invoice created
// already Paid, keeping the ledger strictly additive.
func ApplyCredit(params *types.ApplyCreditRequestBody) (*models.Invoice, error) {
	d := db.GetDb()
	now := time.Now()
	invoice := models.Invoice{
		InvoiceID: NewInvoiceNumber("DSC"),
		StudentID: params.StudentID,
		Items: models.InvoiceItems{{
			Description: fmt.Sprintf("DISCOUNT: %s", params.Description),
			Amount:      -params.Amount,
		}},
		TotalAmount: -params.Amount,
		Status:      types.INVOICE_PAID,
		PaidAt:      &now,
	}
	if err := d.Create(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// SweepOverdueInvoices flips Pending invoices past their due date to
// Overdue and notifies the students. Run on a schedule.
func SweepOverdueInvoices() {
	d := db.GetDb()
	var overdue []models.Invoice
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Invoice{}).
			Where("status = ? AND due_date < ?", types.INVOICE_PENDING, time.Now()).
			Find(&overdue).
			Error; err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(overdue))
		for _, inv := range overdue {
			ids = append(ids, inv.ID)
		}
		return tx.
			Model(&models.Invoice{}).
			Where("id IN ?", ids).
			Update("status", types.INVOICE_OVERDUE).
			Error
	})
	if err != nil {
		log.Printf("Overdue sweep failed: %s\n", err.Error())
		return
	}
	for _, inv := range overdue {
		CreateNotification(inv.StudentID, types.NOTIFY_PAYMENT,
			fmt.Sprintf("Invoice %s of Rs. %.2f is overdue", inv.InvoiceID, inv.TotalAmount))
	}
	if len(overdue) > 0 {
		log.Printf("Marked %d invoices overdue\n", len(overdue))
	}
}
