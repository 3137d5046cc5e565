package models

import "hms/src/types"

type Block struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex" json:"name,omitempty"`

	Floors []Floor `gorm:"foreignKey:block_id" json:"floors,omitempty"`

	types.Timestamps
}
