package models

import "hms/src/types"

type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role     string `gorm:"default:'student'" json:"role,omitempty"`
	Gender   string `json:"gender,omitempty"`

	Profile  *Profile  `gorm:"foreignKey:user_id" json:"profile,omitempty"`
	Bookings []Booking `gorm:"foreignKey:student_id" json:"bookings,omitempty"`
	Invoices []Invoice `gorm:"foreignKey:student_id" json:"invoices,omitempty"`

	types.Timestamps
}
