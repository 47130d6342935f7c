package model

import "time"

type Board struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null;default:''" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	Author      string    `gorm:"not null" json:"author"`
	Image       string    `gorm:"not null;default:''" json:"image"`
	Upvotes     int       `gorm:"not null;default:0" json:"upvotes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Cards []Card `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"cards"`
}
