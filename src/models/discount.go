package models

import "hms/src/types"

type Discount struct {
	ID             uint               `gorm:"primarykey" json:"id"`
	Name           string             `json:"name,omitempty"`
	Description    string             `json:"description,omitempty"`
	Type           types.DiscountType `json:"type,omitempty"`
	Value          float64            `json:"value"`
	TargetCategory string             `json:"target_category,omitempty"`
	IsActive       bool               `gorm:"default:true" json:"is_active"`

	types.Timestamps
}
