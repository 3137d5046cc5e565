package models

import "hms/src/types"

type Notification struct {
	ID      uint                   `gorm:"primarykey" json:"id"`
	UserID  uint                   `json:"user_id,omitempty"`
	Type    types.NotificationType `gorm:"default:'General'" json:"type,omitempty"`
	Message string                 `json:"message,omitempty"`
	Read    bool                   `gorm:"default:false" json:"read"`

	User User `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
