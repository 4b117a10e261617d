// Package payments simulates the mobile-money and card providers.
// Details are format-validated only; there is no external gateway
// round-trip, so a well-formed request always confirms synchronously.
package payments

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/eventgobj/eventgo/internal/helpers"
	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/status"
	"github.com/shopspring/decimal"
)

var (
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	cardNumberPattern = regexp.MustCompile(`^[0-9]{13,19}$`)
	cardCVVPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Details carries the payment-method-specific input from the caller.
type Details struct {
	Phone          string `json:"phone"`
	CardNumber     string `json:"card_number"`
	CardExpiry     string `json:"card_expiry"`
	CardCVV        string `json:"card_cvv"`
	CardHolderName string `json:"card_holder_name"`
}

// Receipt is the provider confirmation. Only masked fields survive it.
type Receipt struct {
	Reference        string
	MobileMoneyPhone string
	CardLastFour     string
	CardHolderName   string
	ProcessedAt      time.Time
}

type Processor struct {
	log *logger.Logger
}

func NewProcessor(log *logger.Logger) *Processor {
	return &Processor{log: log}
}

// Validate checks the method and its details without charging anything.
// Every failure wraps status.ErrValidation.
func (p *Processor) Validate(method string, details Details) error {
	switch method {
	case models.PaymentMobileMoney:
		phone := strings.ReplaceAll(details.Phone, " ", "")
		if phone == "" {
			return fmt.Errorf("%w: phone number is required for mobile money", status.ErrValidation)
		}
		if !phonePattern.MatchString(phone) {
			return fmt.Errorf("%w: invalid phone number format", status.ErrValidation)
		}
	case models.PaymentCard:
		number := strings.ReplaceAll(details.CardNumber, " ", "")
		if !cardNumberPattern.MatchString(number) {
			return fmt.Errorf("%w: card number must be 13-19 digits", status.ErrValidation)
		}
		if !cardCVVPattern.MatchString(details.CardCVV) {
			return fmt.Errorf("%w: invalid card CVV", status.ErrValidation)
		}
		if strings.TrimSpace(details.CardHolderName) == "" {
			return fmt.Errorf("%w: card holder name is required", status.ErrValidation)
		}
		if err := validateExpiry(details.CardExpiry); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unsupported payment method %q", status.ErrValidation, method)
	}
	return nil
}

// Process validates and confirms a charge, returning the provider
// receipt. The simulated provider never fails a well-formed request.
func (p *Processor) Process(method string, amount decimal.Decimal, details Details) (*Receipt, error) {
	if err := p.Validate(method, details); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: negative charge amount", status.ErrValidation)
	}

	receipt := &Receipt{
		Reference:   helpers.NewPaymentReference(),
		ProcessedAt: time.Now().UTC(),
	}
	switch method {
	case models.PaymentMobileMoney:
		receipt.MobileMoneyPhone = strings.ReplaceAll(details.Phone, " ", "")
	case models.PaymentCard:
		number := strings.ReplaceAll(details.CardNumber, " ", "")
		receipt.CardLastFour = number[len(number)-4:]
		receipt.CardHolderName = strings.TrimSpace(details.CardHolderName)
	}

	p.log.Info("PAYMENT", fmt.Sprintf("%s charge of %s XOF confirmed (%s)",
		method, amount.StringFixed(2), receipt.Reference))
	return receipt, nil
}

// validateExpiry expects MM/YYYY and rejects past dates.
func validateExpiry(expiry string) error {
	parsed, err := time.Parse("01/2006", expiry)
	if err != nil {
		return fmt.Errorf("%w: card expiry must be MM/YYYY", status.ErrValidation)
	}
	endOfMonth := parsed.AddDate(0, 1, 0)
	if !endOfMonth.After(time.Now()) {
		return fmt.Errorf("%w: card has expired", status.ErrValidation)
	}
	return nil
}
