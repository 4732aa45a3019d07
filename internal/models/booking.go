package models

import "time"

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BloodBankID uint      `gorm:"index;not null" json:"blood_bank_id"`
	BloodBank   BloodBank `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date string `gorm:"size:10;not null;index:idx_booking_slot" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null;index:idx_booking_slot" json:"time"`  // HH:mm

	BloodType string `gorm:"size:3" json:"blood_type"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	// Deduplica retries de criação (chave do cliente ou uuid gerado)
	IdempotencyKey string `gorm:"size:64;uniqueIndex" json:"-"`

	Notes              string `gorm:"size:255" json:"notes"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
