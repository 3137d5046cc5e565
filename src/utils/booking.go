package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hms/src/config"
	"hms/src/db"
	"hms/src/lib"
	"hms/src/models"
	"hms/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckoutOrder struct {
	OrderID  string       `json:"order_id"`
	Amount   int64        `json:"amount"`
	Currency string       `json:"currency"`
	Room     *models.Room `json:"room"`
}

// InitiateCheckout resolves the price for a room+plan and opens a
// gateway order. No booking state is mutated: if the student abandons
// payment nothing needs to be undone. The order identifiers and the
// captured amount are durably recorded for reconciliation before the
// order handle is returned.
func InitiateCheckout(ctx context.Context, studentId, roomId, planId uint) (*CheckoutOrder, error) {
	d := db.GetDb()
	var room models.Room
	if err := d.
		Model(&models.Room{}).
		Where(&models.Room{ID: roomId}).
		Preload("PricingPlans").
		Preload("ActiveDiscount").
		First(&room).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrRoomNotFound
		}
		return nil, err
	}
	if room.IsOccupied {
		return nil, types.ErrRoomNoLongerAvailable
	}
	var count int64
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{StudentID: studentId}).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN}).
		Count(&count).
		Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, types.ErrAlreadyBooked
	}

	amount, err := ResolvePrice(&room, planId)
	if err != nil {
		return nil, err
	}
	cfg := config.Load()
	amountMinor := ToMinorUnits(amount)
	receipt := fmt.Sprintf("receipt_%s", uuid.NewString())

	gw := lib.GetPaymentGateway()
	orderId, err := gw.CreateOrder(ctx, amountMinor, cfg.Currency, receipt)
	if err != nil {
		return nil, err
	}

	audit := models.PaymentAudit{
		OrderID:     orderId,
		StudentID:   studentId,
		RoomID:      roomId,
		PlanID:      planId,
		Amount:      amount,
		AmountMinor: amountMinor,
		Currency:    cfg.Currency,
		Status:      types.AUDIT_ORDER_CREATED,
	}
	if err := d.Create(&audit).Error; err != nil {
		// The order exists at the gateway either way; without the audit
		// row a later verification falls back to re-resolving the price.
		log.Printf("Could not record payment audit for order %s: %s\n", orderId, err.Error())
	}

	return &CheckoutOrder{
		OrderID:  orderId,
		Amount:   amountMinor,
		Currency: cfg.Currency,
		Room:     &room,
	}, nil
}

// VerifyAndCommit authenticates a completed payment and, in one
// transaction, claims a room slot, creates the booking and its paid
// invoice, and merges the resident profile. Post-commit side effects
// (receipt PDF, email, notification) run best-effort afterwards.
func VerifyAndCommit(actor Actor, params *types.VerifyPaymentRequestBody) (uint, error) {
	studentId := actor.ID
	if !CanVerifyOwnBooking(actor, studentId) {
		return 0, types.ErrNotAllowed
	}
	dob, err := ParseDate(params.Resident.DateOfBirth)
	if err != nil {
		return 0, fmt.Errorf("invalid date_of_birth: %s", err.Error())
	}

	gw := lib.GetPaymentGateway()
	if !gw.VerifySignature(params.OrderID, params.PaymentID, params.Signature) {
		return 0, types.ErrInvalidPaymentSignature
	}

	d := db.GetDb()

	// Replaying the same verified order must not create a second booking.
	var existing models.Booking
	if err := d.
		Model(&models.Booking{}).
		Where("order_id = ?", params.OrderID).
		First(&existing).
		Error; err == nil {
		return existing.ID, nil
	}

	now := time.Now()
	var bookingId uint
	err = d.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.
			Model(&models.Room{}).
			Where(&models.Room{ID: params.RoomID}).
			Preload("PricingPlans").
			Preload("ActiveDiscount").
			First(&room).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrRoomNotFound
			}
			return err
		}
		plan := room.PlanByID(params.PlanID)
		if plan == nil {
			return types.ErrPlanNotFound
		}

		// The amount captured at order creation is what gets persisted,
		// regardless of discount or plan changes since.
		var amount float64
		var audit models.PaymentAudit
		if err := tx.
			Model(&models.PaymentAudit{}).
			Where("order_id = ?", params.OrderID).
			First(&audit).
			Error; err == nil {
			amount = audit.Amount
		} else {
			log.Printf("No payment audit for order %s, re-resolving price\n", params.OrderID)
			amount, err = ResolvePrice(&room, params.PlanID)
			if err != nil {
				return err
			}
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{StudentID: studentId}).
			Where("status IN ?", []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN}).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return types.ErrAlreadyBooked
		}

		// Slot claim: the N+1th concurrent commit for an N-capacity room
		// matches zero rows here and fails before anything is written.
		res := tx.
			Model(&models.Room{}).
			Where("id = ? AND occupant_count < capacity", room.ID).
			Updates(map[string]any{
				"occupant_count": gorm.Expr("occupant_count + 1"),
				"is_occupied":    gorm.Expr("occupant_count + 1 >= capacity"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.ErrRoomNoLongerAvailable
		}

		cfg := config.Load()
		orderId := params.OrderID
		paymentId := params.PaymentID
		booking := models.Booking{
			StudentID:      studentId,
			RoomID:         room.ID,
			PlanID:         plan.ID,
			TotalAmount:    amount,
			Currency:       cfg.Currency,
			OrderID:        &orderId,
			PaymentID:      &paymentId,
			PaymentStatus:  types.PAYMENT_PAID,
			Status:         types.BOOKING_PENDING,
			CheckInDate:    &now,
			ResidentName:   params.Resident.FullName,
			ResidentDOB:    &dob,
			ResidentMobile: params.Resident.MobileNumber,
			ResidentStreet: params.Resident.Street,
			ResidentCity:   params.Resident.City,
			ResidentState:  params.Resident.State,
			ResidentPin:    params.Resident.Pincode,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		bookingId = booking.ID

		if err := tx.Exec(
			"INSERT INTO room_occupants (room_id, user_id) VALUES (?, ?)",
			room.ID, studentId,
		).Error; err != nil {
			return err
		}

		invoice := models.Invoice{
			InvoiceID: NewInvoiceNumber("BKG"),
			StudentID: studentId,
			BookingID: &booking.ID,
			Items: models.InvoiceItems{{
				Description: fmt.Sprintf("Hostel Fee (%d %s)", plan.Duration, plan.Unit),
				Amount:      amount,
			}},
			TotalAmount: amount,
			Status:      types.INVOICE_PAID,
			PaidAt:      &now,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		profile := models.Profile{
			UserID:      studentId,
			FullName:    params.Resident.FullName,
			PhoneNumber: params.Resident.MobileNumber,
			DateOfBirth: &dob,
			Age:         AgeFromDOB(dob, now),
			Street:      params.Resident.Street,
			City:        params.Resident.City,
			State:       params.Resident.State,
			Pincode:     params.Resident.Pincode,
		}
		if err := tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"full_name", "phone_number", "date_of_birth", "age",
					"street", "city", "state", "pincode",
				}),
			}).
			Create(&profile).
			Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.PaymentAudit{}).
			Where("order_id = ?", params.OrderID).
			Updates(&models.PaymentAudit{
				PaymentID: &paymentId,
				Status:    types.AUDIT_COMMITTED,
			}).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// A concurrent replay of this order may have committed first and
		// made our write fail on the order_id unique index or on the
		// active-booking re-check. That booking is this call's result;
		// the order must not be flagged for refund.
		var committed models.Booking
		if lerr := d.
			Model(&models.Booking{}).
			Where("order_id = ?", params.OrderID).
			First(&committed).
			Error; lerr == nil {
			return committed.ID, nil
		}
		switch {
		case errors.Is(err, types.ErrRoomNotFound),
			errors.Is(err, types.ErrPlanNotFound),
			errors.Is(err, types.ErrAlreadyBooked):
			return 0, err
		case errors.Is(err, types.ErrRoomNoLongerAvailable):
			flagForRefund(params.OrderID, params.PaymentID, "room filled before commit")
			return 0, err
		default:
			// Payment is verified but nothing was written. Flag the order
			// for manual reconciliation; the client must not be told the
			// payment failed.
			log.Printf("Commit failed for verified order %s payment %s: %s\n",
				params.OrderID, params.PaymentID, err.Error())
			flagForRefund(params.OrderID, params.PaymentID, err.Error())
			return 0, types.ErrPersistenceFailure
		}
	}

	go bookingCommittedEffects(bookingId)

	return bookingId, nil
}

func flagForRefund(orderId, paymentId, note string) {
	d := db.GetDb()
	if err := d.
		Model(&models.PaymentAudit{}).
		Where("order_id = ?", orderId).
		Updates(&models.PaymentAudit{
			PaymentID: &paymentId,
			Status:    types.AUDIT_REFUND_DUE,
			Note:      note,
		}).
		Error; err != nil {
		log.Printf("Could not flag order %s for refund: %s\n", orderId, err.Error())
	}
}

// bookingCommittedEffects runs after the booking is committed. Failures
// here are logged and suppressed: the booking already exists and must
// not be reported as failed.
func bookingCommittedEffects(bookingId uint) {
	d := db.GetDb()
	var booking models.Booking
	if err := d.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingId}).
		Preload("Student").
		Preload("Room").
		First(&booking).
		Error; err != nil {
		log.Printf("Could not load booking %d for side effects: %s\n", bookingId, err.Error())
		return
	}
	var invoice models.Invoice
	if err := d.
		Model(&models.Invoice{}).
		Where("booking_id = ?", bookingId).
		First(&invoice).
		Error; err != nil {
		log.Printf("Could not load invoice for booking %d: %s\n", bookingId, err.Error())
		return
	}

	CreateNotification(booking.StudentID, types.NOTIFY_BOOKING,
		fmt.Sprintf("Your room booking has been confirmed! Room Number: %s", booking.Room.RoomNumber))

	pdfPath, err := GenerateInvoicePDF(&invoice, &booking, &booking.Room)
	if err != nil {
		log.Printf("Could not generate receipt for booking %d: %s\n", bookingId, err.Error())
		pdfPath = ""
	}
	if err := SendBookingConfirmation(booking.Student.Email, booking.ResidentName, pdfPath); err != nil {
		log.Printf("Could not send confirmation email for booking %d: %s\n", bookingId, err.Error())
	}
}

// CheckInResident marks the actual arrival of a resident, distinct from
// the planned date captured at booking time.
func CheckInResident(actor Actor, bookingId uint) (*models.Booking, error) {
	if !CanManageResidents(actor) {
		return nil, types.ErrNotAllowed
	}
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != types.BOOKING_PENDING {
			return types.ErrInvalidBookingStatus
		}
		now := time.Now()
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			Updates(&models.Booking{
				Status:      types.BOOKING_CHECKED_IN,
				CheckInDate: &now,
			}).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CHECKED_IN
		booking.CheckInDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CheckOutResident vacates the slot: booking transitions to checked-out
// and the room's occupancy is recomputed, possibly flipping it back to
// available.
func CheckOutResident(actor Actor, bookingId uint) (*models.Booking, error) {
	if !CanManageResidents(actor) {
		return nil, types.ErrNotAllowed
	}
	d := db.GetDb()
	var booking models.Booking
	err := d.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrBookingNotFound
			}
			return err
		}
		if booking.Status != types.BOOKING_CHECKED_IN && booking.Status != types.BOOKING_ACTIVE {
			return types.ErrInvalidBookingStatus
		}
		now := time.Now()
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			Updates(&models.Booking{
				Status:       types.BOOKING_CHECKED_OUT,
				CheckOutDate: &now,
			}).
			Error; err != nil {
			return err
		}
		booking.Status = types.BOOKING_CHECKED_OUT
		booking.CheckOutDate = &now
		return releaseRoomSlot(tx, booking.RoomID, booking.StudentID)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking is reachable from any pre-check-in state and frees the
// claimed slot. Bookings are never hard-deleted.
func CancelBooking(actor Actor, bookingId uint) error {
	d := db.GetDb()
	return d.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			First(&booking).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrBookingNotFound
			}
			return err
		}
		if !CanManageResidents(actor) && booking.StudentID != actor.ID {
			return types.ErrNotAllowed
		}
		if booking.Status != types.BOOKING_PENDING && booking.Status != types.BOOKING_ACTIVE {
			return types.ErrInvalidBookingStatus
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			Updates(&models.Booking{Status: types.BOOKING_CANCELED}).
			Error; err != nil {
			return err
		}
		return releaseRoomSlot(tx, booking.RoomID, booking.StudentID)
	})
}

func releaseRoomSlot(tx *gorm.DB, roomId, studentId uint) error {
	if err := tx.Exec(
		"DELETE FROM room_occupants WHERE room_id = ? AND user_id = ?",
		roomId, studentId,
	).Error; err != nil {
		return err
	}
	return tx.
		Model(&models.Room{}).
		Where("id = ? AND occupant_count > 0", roomId).
		Updates(map[string]any{
			"occupant_count": gorm.Expr("occupant_count - 1"),
			"is_occupied":    gorm.Expr("occupant_count - 1 >= capacity"),
		}).
		Error
}
