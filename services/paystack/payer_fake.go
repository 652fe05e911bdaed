package paystack

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

// FakePayer simulates paystack for environments without credentials.
// Its checkout URL points back to this service, so visiting it confirms the payment.
type FakePayer struct {
	logger        mylog.Logger
	publicBaseURL string
	store         mystore.Store[Transaction]
	nower         mytime.Nower
}

func NewFakePayer(publicBaseURL string, store mystore.Store[Transaction], nower mytime.Nower) *FakePayer {
	return &FakePayer{
		logger:        mylog.New("paystack-fake"),
		publicBaseURL: publicBaseURL,
		store:         store,
		nower:         nower,
	}
}

func (p *FakePayer) Initialize(c context.Context, email string, amountMinorUnits int64, reference string, metadata map[string]any) (InitializeResult, error) {
	if reference == "" {
		return InitializeResult{}, myerrors.NewInvalidInputErrorf("missing reference")
	}
	if metadata == nil {
		metadata = map[string]any{}
	}

	err := p.store.Put(c, reference, Transaction{
		Reference:        reference,
		Status:           StatusInitialized,
		AmountMinorUnits: amountMinorUnits,
		Currency:         "NGN",
		CustomerEmail:    email,
		Metadata:         metadata,
		CreatedAt:        p.nower.Now(),
	})
	if err != nil {
		return InitializeResult{}, myerrors.NewInternalError(fmt.Errorf("error storing mock transaction %s: %s", reference, err))
	}

	p.logger.Log(c, reference, mylog.SeverityInfo, "Initialized mock transaction %s", reference)

	return InitializeResult{
		CheckoutURL: fmt.Sprintf("%s/api/checkout/mock-redirect?reference=%s", p.publicBaseURL, url.QueryEscape(reference)),
		AccessCode:  "MOCK-" + reference,
	}, nil
}

func (p *FakePayer) Verify(c context.Context, reference string) (Transaction, error) {
	tx, found, err := p.store.Get(c, reference)
	if err != nil {
		return Transaction{}, myerrors.NewInternalError(fmt.Errorf("error fetching mock transaction %s: %s", reference, err))
	}
	if !found {
		return Transaction{}, myerrors.NewNotFoundError(fmt.Errorf("mock transaction %s not found", reference))
	}

	if tx.Status != StatusSuccess {
		tx.Status = StatusPending
	}

	return tx, nil
}

func (p *FakePayer) Confirm(c context.Context, reference string) (Transaction, error) {
	tx := Transaction{}
	err := p.store.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		tx, found, err = p.store.Get(c, reference)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching mock transaction %s: %s", reference, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("mock transaction %s not found", reference))
		}

		if tx.Status == StatusSuccess {
			return nil
		}

		now := p.nower.Now()
		tx.Status = StatusSuccess
		tx.PaidAt = &now

		err = p.store.Put(c, reference, tx)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing mock transaction %s: %s", reference, err))
		}
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	p.logger.Log(c, reference, mylog.SeverityInfo, "Confirmed mock transaction %s", reference)

	return tx, nil
}
