package paystack

import (
	"context"

	"github.com/MarcGrol/shopreconciler/lib/myhttpclient"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

//go:generate mockgen -source=payer.go -package paystack -destination payer_mock.go Payer
type Payer interface {
	Initialize(c context.Context, email string, amountMinorUnits int64, reference string, metadata map[string]any) (InitializeResult, error)
	Verify(c context.Context, reference string) (Transaction, error)
}

// Confirmer simulates the provider completing a payment; only the mock transport offers it.
type Confirmer interface {
	Confirm(c context.Context, reference string) (Transaction, error)
}

// NewPayer returns the transport belonging to the configured mode.
// The confirmer is nil unless running in mock mode.
func NewPayer(cfg Config, transactionStore mystore.Store[Transaction], httpClient myhttpclient.HTTPSender, nower mytime.Nower) (Payer, Confirmer) {
	if cfg.IsMock() {
		fake := NewFakePayer(cfg.PublicBaseURL, transactionStore, nower)
		return fake, fake
	}
	return newLivePayer(cfg.APIBaseURL, cfg.SecretKey, httpClient), nil
}
