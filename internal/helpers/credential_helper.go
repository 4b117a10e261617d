package helpers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewPurchaseReference returns a short human-facing purchase reference,
// e.g. EVT-9F2C41AB.
func NewPurchaseReference() string {
	return fmt.Sprintf("EVT-%s", randomHex(4))
}

// NewPaymentReference returns a provider-style payment reference,
// e.g. PAY-3A91BC04D2E7.
func NewPaymentReference() string {
	return fmt.Sprintf("PAY-%s", randomHex(6))
}

// NewCredential derives the opaque entry credential for a paid purchase:
// the purchase id prefix for traceability plus a high-entropy random
// suffix so credentials are unguessable and collision-free. The token
// carries no signature; its authority comes from matching the ledger.
func NewCredential(purchaseID uuid.UUID) string {
	prefix := strings.ToUpper(purchaseID.String()[:8])
	return fmt.Sprintf("EVT-%s-%s", prefix, randomHex(16))
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process cannot safely issue
		// credentials at all.
		panic(fmt.Sprintf("credential entropy unavailable: %v", err))
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
