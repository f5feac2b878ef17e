package model

import "time"

type Book struct {
	ID              uint     `gorm:"primaryKey"`
	Title           string   `gorm:"size:255;not null"`
	Description     string   `gorm:"type:text;not null"`
	AuthorID        uint     `gorm:"not null;index"`
	Author          Author   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CategoryID      uint     `gorm:"not null;index"`
	Category        Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	ISBN            string   `gorm:"column:isbn;size:13;not null"`
	CopiesAvailable int      `gorm:"not null;default:0;check:copies_available >= 0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
