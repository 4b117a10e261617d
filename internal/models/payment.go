package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentSucceeded = "succeeded"
	PaymentFailed    = "failed"
)

// Payment is the ledger entry for one simulated provider round.
// Only masked detail fields are stored, never raw card data.
type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Reference        string          `gorm:"unique;not null" json:"reference"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency         string          `gorm:"not null;default:'XOF'" json:"currency"`
	Method           string          `gorm:"not null" json:"method"`
	Status           string          `gorm:"not null" json:"status"`
	MobileMoneyPhone string          `json:"mobile_money_phone,omitempty"`
	CardLastFour     string          `json:"card_last_four,omitempty"`
	CardHolderName   string          `json:"card_holder_name,omitempty"`
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ProcessedAt      *time.Time      `json:"processed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
