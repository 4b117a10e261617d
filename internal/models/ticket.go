package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ticket is a priced, quantity-limited ticket category under an event.
// QuantityAvailable is a fixed ceiling. QuantitySold only ever moves
// through catalog.Reserve so that
// 0 <= quantity_sold <= quantity_available holds under concurrent purchases.
type Ticket struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name              string          `gorm:"not null" json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	QuantityAvailable int             `gorm:"not null" json:"quantity_available"`
	QuantitySold      int             `gorm:"not null;default:0" json:"quantity_sold"`
	IsActive          bool            `gorm:"not null;default:true" json:"is_active"`
	EventID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"event_id"`
	Event             Event           `json:"event,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}

func (ticket *Ticket) QuantityRemaining() int {
	remaining := ticket.QuantityAvailable - ticket.QuantitySold
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (ticket *Ticket) IsSoldOut() bool {
	return ticket.QuantityRemaining() == 0
}
