package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PurchasePending   = "pending"
	PurchasePaid      = "paid"
	PurchaseCancelled = "cancelled"
)

const (
	PaymentMobileMoney = "mobile_money"
	PaymentCard        = "card"
)

// Purchase records one buyer's acquisition of N units of a ticket type.
// UnitPrice is captured at reservation time; TotalAmount is always
// quantity * unit_price computed server-side. Credential is set exactly
// once, on the transition to paid, and never regenerated.
type Purchase struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Reference        string          `gorm:"unique;not null" json:"reference"`
	Quantity         int             `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentMethod    string          `gorm:"not null" json:"payment_method"`
	PaymentReference string          `json:"payment_reference"`
	Status           string          `gorm:"not null;default:'pending';index" json:"status"`
	Credential       *string         `gorm:"unique" json:"credential,omitempty"`
	TicketID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Ticket           Ticket          `json:"ticket,omitempty"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User             User            `json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
}

func (purchase *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	return
}

func (purchase *Purchase) IsTerminal() bool {
	return purchase.Status == PurchasePaid || purchase.Status == PurchaseCancelled
}
