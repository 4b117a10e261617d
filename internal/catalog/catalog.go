// Package catalog owns ticket-type availability. All movement of the
// quantity_sold counter goes through Reserve so the check and the
// increment are one conditional UPDATE, never a read-modify-write in
// application memory.
package catalog

import (
	"errors"
	"fmt"

	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/status"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reserve consumes quantity units of a ticket type and returns the unit
// price read at reservation time. It fails with status.ErrNotFound when
// the ticket type or its event is missing, inactive, or the event has
// ended, and with status.ErrOutOfStock when fewer than quantity units
// remain. Callers run it inside a transaction so a later failure in the
// same unit of work rolls the increment back.
func Reserve(tx *gorm.DB, ticketID uuid.UUID, quantity int) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, fmt.Errorf("%w: quantity must be at least 1", status.ErrValidation)
	}

	var ticket models.Ticket
	err := tx.Preload("Event").Where("id = ?", ticketID).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("%w: ticket type %s", status.ErrNotFound, ticketID)
		}
		return decimal.Zero, err
	}

	if !ticket.IsActive || !ticket.Event.IsActive {
		return decimal.Zero, fmt.Errorf("%w: ticket type %s is not on sale", status.ErrNotFound, ticketID)
	}
	if ticket.Event.IsPast() {
		return decimal.Zero, fmt.Errorf("%w: event has ended, sales are closed", status.ErrNotFound)
	}

	// The availability check and the increment must be indivisible:
	// two concurrent reservations race on this statement and the loser
	// matches zero rows.
	res := tx.Model(&models.Ticket{}).
		Where("id = ? AND quantity_sold + ? <= quantity_available", ticketID, quantity).
		UpdateColumn("quantity_sold", gorm.Expr("quantity_sold + ?", quantity))
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, fmt.Errorf("%w: requested %d, remaining %d",
			status.ErrOutOfStock, quantity, ticket.QuantityRemaining())
	}

	return ticket.Price, nil
}
