package models

import (
	"time"

	"hms/src/types"
)

type Profile struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex" json:"user_id,omitempty"`
	FullName     string     `json:"full_name,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Age          uint       `json:"age,omitempty"`
	Street       string     `json:"street,omitempty"`
	City         string     `json:"city,omitempty"`
	State        string     `json:"state,omitempty"`
	Pincode      string     `json:"pincode,omitempty"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
