package model

import "time"

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
