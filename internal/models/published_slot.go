package models

import "time"

// PublishedSlot é a capacidade publicada de um horário de doação.
// Identidade: (blood_bank_id, date, time).
type PublishedSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BloodBankID uint      `gorm:"not null;uniqueIndex:idx_slot_identity" json:"blood_bank_id"`
	BloodBank   BloodBank `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Date string `gorm:"size:10;not null;uniqueIndex:idx_slot_identity" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null;uniqueIndex:idx_slot_identity" json:"time"`  // HH:mm

	TotalCapacity int `gorm:"not null" json:"total_capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
