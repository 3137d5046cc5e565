package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"hms/src/types"
)

type InvoiceItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type InvoiceItems []InvoiceItem

func (a InvoiceItems) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *InvoiceItems) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, a)
}

// Invoice is the additive ledger: one row per payable event. Credits are
// negative-amount rows created already Paid.
type Invoice struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	InvoiceID string  `gorm:"uniqueIndex" json:"invoice_id,omitempty"`
	StudentID uint    `json:"student_id,omitempty"`
	BookingID *uint   `json:"booking_id,omitempty"`

	Items       InvoiceItems        `gorm:"type:jsonb" json:"items,omitempty"`
	TotalAmount float64             `json:"total_amount"`
	Status      types.InvoiceStatus `gorm:"default:'Pending'" json:"status,omitempty"`

	PaidAt  *time.Time `json:"paid_at,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`

	Student User     `gorm:"foreignKey:student_id" json:"student,omitempty"`
	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
