package utils

import (
	"fmt"

	"hms/src/lib"
	"hms/src/models"
)

func SendBookingConfirmation(email, name, pdfPath string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee;">
		<h2>Booking Confirmed, %s!</h2>
		<p>Your room booking has been verified and confirmed.</p>
		<p>Your payment receipt is attached to this email.</p>
		<p>Regards,<br/>Hostel Administration</p>
	</div>`, name)
	return lib.SendMail(&lib.SendMailInput{
		To:         email,
		ToName:     name,
		Subject:    "Booking Confirmed - Hostel Management System",
		Body:       body,
		Html:       true,
		Attachment: pdfPath,
	})
}

func SendFineNotificationEmail(email, name string, invoice *models.Invoice) error {
	dueDate := "Immediate"
	if invoice.DueDate != nil {
		dueDate = invoice.DueDate.Format("2 January 2006")
	}
	description := ""
	if len(invoice.Items) > 0 {
		description = invoice.Items[0].Description
	}
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee;">
		<h2>Fine Notice</h2>
		<p>Dear %s,</p>
		<p>A fine has been added to your account.</p>
		<div style="background: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p><strong>Invoice ID:</strong> %s</p>
			<p><strong>Description:</strong> %s</p>
			<p><strong>Amount:</strong> Rs. %.2f</p>
			<p><strong>Due Date:</strong> %s</p>
		</div>
		<p>Please clear the due at the earliest.</p>
		<p>Regards,<br/>Hostel Administration</p>
	</div>`, name, invoice.InvoiceID, description, invoice.TotalAmount, dueDate)
	return lib.SendMail(&lib.SendMailInput{
		To:      email,
		ToName:  name,
		Subject: "Fine Added to Your Account - Hostel Management System",
		Body:    body,
		Html:    true,
	})
}

func SendDueReminder(email, name string, amount float64) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px; border: 1px solid #eee;">
		<h2>Payment Reminder</h2>
		<p>Dear %s,</p>
		<p>This is a gentle reminder that you have pending dues of <strong>Rs. %.2f</strong>.</p>
		<p>Please clear them at the earliest to avoid late fines.</p>
		<p>Regards,<br/>Hostel Administration</p>
	</div>`, name, amount)
	return lib.SendMail(&lib.SendMailInput{
		To:      email,
		ToName:  name,
		Subject: "Pending Dues Reminder - Hostel Management System",
		Body:    body,
		Html:    true,
	})
}
