package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validation records an entry-gate scan of a purchase credential.
// One row per purchase: a credential admits once.
type Validation struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"purchase_id"`
	Purchase      Purchase  `json:"purchase,omitempty"`
	ValidatedByID uuid.UUID `gorm:"type:uuid;not null" json:"validated_by_id"`
	ValidatedBy   User      `gorm:"foreignKey:ValidatedByID" json:"-"`
	Location      string    `json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

func (validation *Validation) BeforeCreate(tx *gorm.DB) (err error) {
	if validation.ID == uuid.Nil {
		validation.ID = uuid.New()
	}
	return
}
