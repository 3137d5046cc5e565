package models

import (
	"time"

	"hms/src/types"
)

type Booking struct {
	ID        uint `gorm:"primarykey" json:"id"`
	StudentID uint `json:"student_id,omitempty"`
	RoomID    uint `json:"room_id,omitempty"`

	// Captured at verification time from the order the student paid for,
	// never recomputed from the room afterwards.
	PlanID      uint    `json:"plan_id,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency,omitempty"`

	OrderID   *string `gorm:"uniqueIndex" json:"order_id,omitempty"`
	PaymentID *string `json:"payment_id,omitempty"`

	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`

	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	// Resident registration details, captured once at booking time.
	ResidentName   string     `json:"resident_name,omitempty"`
	ResidentDOB    *time.Time `json:"resident_dob,omitempty"`
	ResidentMobile string     `json:"resident_mobile,omitempty"`
	ResidentStreet string     `json:"resident_street,omitempty"`
	ResidentCity   string     `json:"resident_city,omitempty"`
	ResidentState  string     `json:"resident_state,omitempty"`
	ResidentPin    string     `json:"resident_pin,omitempty"`

	Student User `gorm:"foreignKey:student_id" json:"student,omitempty"`
	Room    Room `gorm:"foreignKey:room_id" json:"room,omitempty"`

	types.Timestamps
}

// IsActive reports whether the booking still occupies a room slot.
func (b *Booking) IsActive() bool {
	switch b.Status {
	case types.BOOKING_PENDING, types.BOOKING_ACTIVE, types.BOOKING_CHECKED_IN:
		return true
	}
	return false
}
