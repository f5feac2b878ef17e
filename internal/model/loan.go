package model

import "time"

type Loan struct {
	ID         uint       `gorm:"primaryKey"`
	MemberID   uint       `gorm:"not null;index"`
	Member     Member     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	BookID     uint       `gorm:"not null;index"`
	Book       Book       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	LoanDate   time.Time  `gorm:"type:date;not null"`
	ReturnDate *time.Time `gorm:"type:date"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
