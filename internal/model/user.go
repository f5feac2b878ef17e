package model

import "time"

// User is the identity record a Member points at. It is managed outside the
// catalog API (see the create-user command).
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
