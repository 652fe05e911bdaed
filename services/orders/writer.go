package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mypublisher"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
	"github.com/MarcGrol/shopreconciler/lib/myuuid"
	"github.com/MarcGrol/shopreconciler/services/orders/orderevents"
	"github.com/MarcGrol/shopreconciler/services/payments"
)

type Writer struct {
	logger    mylog.Logger
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	store     mystore.Store[Order]
	publisher mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWriter(nower mytime.Nower, uuider myuuid.UUIDer, store mystore.Store[Order], publisher mypublisher.Publisher) *Writer {
	return &Writer{
		logger:    mylog.New("orders"),
		nower:     nower,
		uuider:    uuider,
		store:     store,
		publisher: publisher,
	}
}

// Write records the payment as an order, unless one already exists for its reference.
// Either way the uid of the one order for this reference is returned.
func (w *Writer) Write(c context.Context, payment payments.ConfirmedPayment, status Status) (string, error) {
	if payment.Reference == "" {
		return "", myerrors.NewInvalidInputErrorf("cannot write order without payment reference")
	}

	orderUID := ""
	created := false
	err := w.store.RunInTransaction(c, func(c context.Context) error {
		// Runs again after a concurrent transaction: must re-check
		created = false

		existing, found, err := w.store.Get(c, payment.Reference)
		if err != nil {
			return myerrors.NewPersistenceError(fmt.Errorf("error fetching order for reference %s: %s", payment.Reference, err))
		}
		if found {
			orderUID = existing.UID
			return nil
		}

		order, err := w.newOrder(payment, status)
		if err != nil {
			return err
		}

		err = w.store.Put(c, payment.Reference, order)
		if err != nil {
			return myerrors.NewPersistenceError(fmt.Errorf("error storing order for reference %s: %s", payment.Reference, err))
		}

		err = w.publisher.Publish(c, orderevents.TopicName, orderevents.OrderCreated{
			OrderUID:          order.UID,
			PaymentReference:  order.PaymentReference,
			Source:            string(payment.Source),
			UserID:            order.UserID,
			Email:             order.Email,
			AmountInCents:     payment.AmountMinorUnits,
			Currency:          order.Currency,
			Status:            string(order.Status),
			LineItemCount:     len(order.LineItems),
			LineItemsEncoding: string(payment.LineItemsEncoding),
			Anomaly:           len(order.LineItems) == 0,
		})
		if err != nil {
			return myerrors.NewPersistenceError(fmt.Errorf("error publishing order-created for reference %s: %s", payment.Reference, err))
		}

		orderUID = order.UID
		created = true

		return nil
	})
	if err != nil {
		return "", err
	}

	if created {
		w.logger.Log(c, payment.Reference, mylog.SeverityInfo, "Created order %s for reference %s (%s)", orderUID, payment.Reference, payment.Source)
	} else {
		w.logger.Log(c, payment.Reference, mylog.SeverityInfo, "Order %s for reference %s already exists (%s)", orderUID, payment.Reference, payment.Source)
	}

	return orderUID, nil
}

func (w *Writer) newOrder(payment payments.ConfirmedPayment, status Status) (Order, error) {
	rawMetadata := ""
	if len(payment.Metadata) > 0 {
		metadataBytes, err := json.Marshal(payment.Metadata)
		if err != nil {
			return Order{}, myerrors.NewInternalError(fmt.Errorf("error serializing metadata of %s: %s", payment.Reference, err))
		}
		rawMetadata = string(metadataBytes)
	}

	lineItems := payment.LineItems
	if lineItems == nil {
		lineItems = []payments.LineItem{}
	}

	return Order{
		UID:                  w.uuider.Create(),
		OrderNumber:          payment.Reference,
		PaymentReference:     payment.Reference,
		PaymentTransactionID: payment.TransactionID,
		PaymentCustomerID:    payment.CustomerID,
		UserID:               payment.UserID,
		CustomerName:         payment.CustomerName,
		Email:                payment.Email,
		PromoCode:            payment.PromoCode,
		LineItems:            lineItems,
		TotalPrice:           payment.Amount.InexactFloat64(),
		Currency:             payment.Currency,
		DiscountAmount:       payment.Discount.InexactFloat64(),
		Status:               status,
		OrderDate:            w.nower.Now(),
		RawMetadata:          rawMetadata,
	}, nil
}
