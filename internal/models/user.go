package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'donor'" json:"role"`

	// Campos de doador (vazios para contas de banco de sangue)
	Gender    string `gorm:"size:10" json:"gender"`
	BloodType string `gorm:"size:3" json:"blood_type"`

	// Preenchido quando a conta pertence a um banco de sangue
	BloodBankID *uint      `json:"blood_bank_id,omitempty"`
	BloodBank   *BloodBank `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"blood_bank,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleDonor     = "donor"
	RoleBloodBank = "bloodbank"
)
