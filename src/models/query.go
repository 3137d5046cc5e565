package models

import "hms/src/types"

// Query is a maintenance ticket raised by a resident.
type Query struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	StudentID   uint              `json:"student_id,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Status      types.QueryStatus `gorm:"default:'Open'" json:"status,omitempty"`

	Student User `gorm:"foreignKey:student_id" json:"-"`

	types.Timestamps
}
