package models

import "hms/src/types"

type Floor struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	BlockID uint   `gorm:"uniqueIndex:idx_floors_block_number" json:"block_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Number  int    `gorm:"uniqueIndex:idx_floors_block_number" json:"number,omitempty"`

	Block Block  `gorm:"foreignKey:block_id" json:"-"`
	Rooms []Room `gorm:"foreignKey:floor_id" json:"rooms,omitempty"`

	types.Timestamps
}
