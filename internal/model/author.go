package model

import "time"

type Author struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	Biography string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
