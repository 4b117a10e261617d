// Package purchases implements the purchase ledger: reservation,
// payment confirmation, credential issuance and scoped reads, all as
// one unit of work per attempt.
package purchases

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventgobj/eventgo/internal/catalog"
	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/payments"
	"github.com/eventgobj/eventgo/internal/status"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	log       *logger.Logger
	processor *payments.Processor
}

func NewService(db *gorm.DB, log *logger.Logger) *Service {
	return &Service{
		db:        db,
		log:       log,
		processor: payments.NewProcessor(log),
	}
}

type Request struct {
	Quantity      int
	PaymentMethod string
	Details       payments.Details
}

// Purchase runs the whole attempt in one transaction: reserve, create
// the ledger row, confirm the simulated charge, mark paid and issue the
// credential. Failure anywhere rolls everything back, so no row is ever
// observable as paid with unreserved inventory, and failed attempts
// leave no row at all.
func (s *Service) Purchase(userID, ticketID uuid.UUID, req Request) (*models.Purchase, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", status.ErrValidation)
	}
	if err := s.processor.Validate(req.PaymentMethod, req.Details); err != nil {
		return nil, err
	}

	var purchase models.Purchase
	err := s.db.Transaction(func(tx *gorm.DB) error {
		unitPrice, err := catalog.Reserve(tx, ticketID, req.Quantity)
		if err != nil {
			return err
		}

		total := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
		purchase = models.Purchase{
			ID:            uuid.New(),
			Reference:     helpers.NewPurchaseReference(),
			Quantity:      req.Quantity,
			UnitPrice:     unitPrice,
			TotalAmount:   total,
			PaymentMethod: req.PaymentMethod,
			Status:        models.PurchasePending,
			TicketID:      ticketID,
			UserID:        userID,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		receipt, err := s.processor.Process(req.PaymentMethod, total, req.Details)
		if err != nil {
			return err
		}

		credential := helpers.NewCredential(purchase.ID)
		paidAt := receipt.ProcessedAt
		updates := map[string]interface{}{
			"status":            models.PurchasePaid,
			"paid_at":           paidAt,
			"credential":        credential,
			"payment_reference": receipt.Reference,
		}
		if err := tx.Model(&purchase).Updates(updates).Error; err != nil {
			return err
		}

		payment := models.Payment{
			Reference:        receipt.Reference,
			Amount:           total,
			Currency:         "XOF",
			Method:           req.PaymentMethod,
			Status:           models.PaymentSucceeded,
			MobileMoneyPhone: receipt.MobileMoneyPhone,
			CardLastFour:     receipt.CardLastFour,
			CardHolderName:   receipt.CardHolderName,
			PurchaseID:       purchase.ID,
			UserID:           userID,
			ProcessedAt:      &paidAt,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		purchase.Status = models.PurchasePaid
		purchase.PaidAt = &paidAt
		purchase.Credential = &credential
		purchase.PaymentReference = receipt.Reference
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("PURCHASE", fmt.Sprintf("%s paid: %d x ticket %s for %s XOF",
		purchase.Reference, purchase.Quantity, ticketID, purchase.TotalAmount.StringFixed(2)))

	if err := s.db.Preload("Ticket.Event").First(&purchase, "id = ?", purchase.ID).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Get returns a purchase visible to the caller: its buyer, the
// organizer of its event, or an admin. Reads of a paid purchase are
// idempotent; status, total and credential never change after payment.
func (s *Service) Get(callerID uuid.UUID, role string, purchaseID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Preload("Ticket.Event").First(&purchase, "id = ?", purchaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %s", status.ErrNotFound, purchaseID)
		}
		return nil, err
	}

	if purchase.UserID != callerID && role != models.RoleAdmin &&
		!(role == models.RoleOrganizer && purchase.Ticket.Event.OrganizerID == callerID) {
		return nil, fmt.Errorf("%w: purchase belongs to another user", status.ErrForbidden)
	}
	return &purchase, nil
}

// List returns purchases scoped by role: participants see their own,
// organizers additionally see purchases against their events, admins
// see everything.
func (s *Service) List(callerID uuid.UUID, role string) ([]models.Purchase, error) {
	query := s.db.Preload("Ticket.Event").Order("purchases.created_at DESC")

	switch role {
	case models.RoleAdmin:
	case models.RoleOrganizer:
		query = query.
			Joins("JOIN tickets ON tickets.id = purchases.ticket_id").
			Joins("JOIN events ON events.id = tickets.event_id").
			Where("purchases.user_id = ? OR events.organizer_id = ?", callerID, callerID)
	default:
		query = query.Where("user_id = ?", callerID)
	}

	var results []models.Purchase
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByCredential resolves a scanned credential against the ledger.
func (s *Service) GetByCredential(credential string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.Preload("Ticket.Event").First(&purchase, "credential = ?", credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown credential", status.ErrNotFound)
		}
		return nil, err
	}
	return &purchase, nil
}

// Validate records an entry-gate scan. Only the event organizer or an
// admin may validate; a credential admits exactly once, only for a paid
// purchase, and only while the event window is plausible.
func (s *Service) Validate(callerID uuid.UUID, role string, credential, location string) (*models.Validation, error) {
	purchase, err := s.GetByCredential(credential)
	if err != nil {
		return nil, err
	}

	event := purchase.Ticket.Event
	if role != models.RoleAdmin && event.OrganizerID != callerID {
		return nil, fmt.Errorf("%w: only the event organizer can validate entries", status.ErrForbidden)
	}
	if purchase.Status != models.PurchasePaid {
		return nil, fmt.Errorf("%w: purchase is not paid", status.ErrValidation)
	}
	if event.IsPast() {
		return nil, fmt.Errorf("%w: event has ended", status.ErrValidation)
	}
	if startDay := event.StartTime.Truncate(24 * time.Hour); startDay.After(time.Now()) {
		return nil, fmt.Errorf("%w: event has not started yet", status.ErrValidation)
	}

	validation := models.Validation{
		PurchaseID:    purchase.ID,
		ValidatedByID: callerID,
		Location:      location,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Validation{}).Where("purchase_id = ?", purchase.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: credential already validated", status.ErrConflict)
		}
		return tx.Create(&validation).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("VALIDATION", fmt.Sprintf("credential for purchase %s accepted at %q", purchase.Reference, location))
	validation.Purchase = *purchase
	return &validation, nil
}
