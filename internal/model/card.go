package model

import "time"

type Card struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	BoardID  uint       `gorm:"not null;index" json:"boardId"`
	Message  string     `gorm:"not null" json:"message"`
	Author   string     `gorm:"not null" json:"author"`
	Image    *string    `json:"image"`
	Upvotes  int        `gorm:"not null;default:0" json:"upvotes"`
	Pinned   bool       `gorm:"not null;default:false" json:"pinned"`
	PinnedAt *time.Time `json:"pinnedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
