package model

import "time"

type Member struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Address   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
