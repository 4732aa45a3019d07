package models

import "time"

// EligibilityQuestionnaire guarda a última triagem respondida pelo doador.
// As respostas vivem em JSON; o veredito é calculado no domínio.
type EligibilityQuestionnaire struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Gender  string `gorm:"size:10;not null" json:"gender"`
	Answers string `gorm:"type:text" json:"answers"`

	IsEligible    bool   `json:"is_eligible"`
	ResultMessage string `gorm:"size:255" json:"result_message"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
