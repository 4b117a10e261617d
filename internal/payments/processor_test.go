package payments_test

import (
	"testing"
	"time"

	"github.com/eventgobj/eventgo/internal/logger"
	"github.com/eventgobj/eventgo/internal/models"
	"github.com/eventgobj/eventgo/internal/payments"
	"github.com/eventgobj/eventgo/internal/status"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func futureExpiry() string {
	return time.Now().AddDate(1, 0, 0).Format("01/2006")
}

func validCard() payments.Details {
	return payments.Details{
		CardNumber:     "4111 1111 1111 1111",
		CardExpiry:     futureExpiry(),
		CardCVV:        "123",
		CardHolderName: "Awa Dossou",
	}
}

func TestValidateMobileMoney(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"local number", "97123456", false},
		{"international number", "+22997123456", false},
		{"with spaces", "+229 97 12 34 56", false},
		{"missing", "", true},
		{"too short", "9712", true},
		{"letters", "97abc456", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Validate(models.PaymentMobileMoney, payments.Details{Phone: tt.phone})
			if tt.wantErr {
				assert.ErrorIs(t, err, status.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCard(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())

	t.Run("well-formed card passes", func(t *testing.T) {
		assert.NoError(t, p.Validate(models.PaymentCard, validCard()))
	})

	t.Run("short card number", func(t *testing.T) {
		details := validCard()
		details.CardNumber = "411111"
		assert.ErrorIs(t, p.Validate(models.PaymentCard, details), status.ErrValidation)
	})

	t.Run("bad CVV", func(t *testing.T) {
		details := validCard()
		details.CardCVV = "12"
		assert.ErrorIs(t, p.Validate(models.PaymentCard, details), status.ErrValidation)
	})

	t.Run("missing holder name", func(t *testing.T) {
		details := validCard()
		details.CardHolderName = "  "
		assert.ErrorIs(t, p.Validate(models.PaymentCard, details), status.ErrValidation)
	})

	t.Run("malformed expiry", func(t *testing.T) {
		details := validCard()
		details.CardExpiry = "13/2030"
		assert.ErrorIs(t, p.Validate(models.PaymentCard, details), status.ErrValidation)
	})

	t.Run("expired card", func(t *testing.T) {
		details := validCard()
		details.CardExpiry = "01/2020"
		assert.ErrorIs(t, p.Validate(models.PaymentCard, details), status.ErrValidation)
	})
}

func TestValidateUnsupportedMethod(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())
	err := p.Validate("crypto", payments.Details{})
	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestProcessMobileMoney(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())

	receipt, err := p.Process(models.PaymentMobileMoney, decimal.NewFromInt(5000), payments.Details{Phone: "+229 97 12 34 56"})
	require.NoError(t, err)

	assert.Regexp(t, `^PAY-[0-9A-F]{12}$`, receipt.Reference)
	assert.Equal(t, "+22997123456", receipt.MobileMoneyPhone)
	assert.Empty(t, receipt.CardLastFour)
	assert.False(t, receipt.ProcessedAt.IsZero())
}

func TestProcessCardKeepsOnlyMaskedFields(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())

	receipt, err := p.Process(models.PaymentCard, decimal.NewFromInt(2500), validCard())
	require.NoError(t, err)

	assert.Equal(t, "1111", receipt.CardLastFour)
	assert.Equal(t, "Awa Dossou", receipt.CardHolderName)
	assert.Empty(t, receipt.MobileMoneyPhone)
}

func TestProcessRejectsNegativeAmount(t *testing.T) {
	p := payments.NewProcessor(logger.NewSilent())

	_, err := p.Process(models.PaymentMobileMoney, decimal.NewFromInt(-100), payments.Details{Phone: "97123456"})
	assert.ErrorIs(t, err, status.ErrValidation)
}
