package models

import "hms/src/types"

type Announcement struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Title    string `json:"title,omitempty"`
	Slug     string `gorm:"uniqueIndex" json:"slug,omitempty"`
	Content  string `json:"content,omitempty"`
	PostedBy uint   `json:"posted_by,omitempty"`

	Author User `gorm:"foreignKey:posted_by" json:"-"`

	types.Timestamps
}
