package models

import "hms/src/types"

// PaymentAudit is written before any money changes hands: one row per
// gateway order, carrying everything needed to reconcile a verified
// payment that could not be committed. Never hard-deleted.
type PaymentAudit struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	OrderID   string  `gorm:"uniqueIndex" json:"order_id,omitempty"`
	PaymentID *string `json:"payment_id,omitempty"`
	StudentID uint    `json:"student_id,omitempty"`
	RoomID    uint    `json:"room_id,omitempty"`
	PlanID    uint    `json:"plan_id,omitempty"`

	// Captured price at order-creation time.
	Amount      float64 `json:"amount"`
	AmountMinor int64   `json:"amount_minor"`
	Currency    string  `json:"currency,omitempty"`

	Status types.AuditStatus `gorm:"default:'order_created'" json:"status,omitempty"`
	Note   string            `json:"note,omitempty"`

	types.Timestamps
}
