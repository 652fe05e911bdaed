package checkoutpaystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mypublisher"
	"github.com/MarcGrol/shopreconciler/lib/myuuid"
	"github.com/MarcGrol/shopreconciler/services/checkoutapi"
	"github.com/MarcGrol/shopreconciler/services/checkoutevents"
	"github.com/MarcGrol/shopreconciler/services/orders"
	"github.com/MarcGrol/shopreconciler/services/payments"
	"github.com/MarcGrol/shopreconciler/services/paystack"
)

const providerName = "paystack"

var validate = validator.New()

// service is shared by the webhook, verify and mock-redirect transports.
// All of them end in the same idempotent order writer.
type service struct {
	cfg       paystack.Config
	logger    mylog.Logger
	uuider    myuuid.UUIDer
	payer     paystack.Payer
	confirmer paystack.Confirmer
	writer    OrderWriter
	publisher mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cfg paystack.Config, logger mylog.Logger, uuider myuuid.UUIDer, payer paystack.Payer, confirmer paystack.Confirmer, writer OrderWriter, publisher mypublisher.Publisher) *service {
	return &service{
		cfg:       cfg,
		logger:    logger,
		uuider:    uuider,
		payer:     payer,
		confirmer: confirmer,
		writer:    writer,
		publisher: publisher,
	}
}

// startCheckout initializes a transaction and returns the url the shopper must pay at
func (s *service) startCheckout(c context.Context, checkout checkoutapi.Checkout) (string, error) {
	err := checkout.Validate()
	if err != nil {
		return "", err
	}

	reference := checkout.Reference
	if reference == "" {
		reference = s.uuider.Create()
	}
	amountMinorUnits := payments.MajorToMinor(checkout.Total())

	s.logger.Log(c, reference, mylog.SeverityInfo, "Start checkout %s for %d minor units", reference, amountMinorUnits)

	result, err := s.payer.Initialize(c, checkout.Email, amountMinorUnits, reference, checkout.Metadata())
	if err != nil {
		return "", err
	}

	err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		CheckoutUID:   reference,
		ProviderName:  providerName,
		Mode:          string(s.cfg.Mode),
		AmountInCents: amountMinorUnits,
		Currency:      "NGN",
		ShopperUID:    checkout.UserID,
		ShopperEmail:  checkout.Email,
		PromoCode:     checkout.PromoCode,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
	}

	return result.CheckoutURL, nil
}

// webhookNotification authenticates and processes a server push of paystack.
// Once authenticated, failures to record the order are logged but acknowledged,
// so paystack does not keep retrying. Those orders must be recovered by an operator.
func (s *service) webhookNotification(c context.Context, body []byte, signature string) (string, error) {
	if s.cfg.WebhookSecret == "" {
		return "", myerrors.NewConfigurationError(fmt.Errorf("paystack webhook secret is not configured"))
	}

	if !isValidSignature(body, signature, s.cfg.WebhookSecret) {
		s.logger.Log(c, "", mylog.SeverityWarn, "Webhook: invalid signature")
		return "", myerrors.NewUnauthorizedError(fmt.Errorf("invalid signature"))
	}

	event := payments.WebhookEvent{}
	err := json.Unmarshal(body, &event)
	if err != nil {
		return "", myerrors.NewMalformedEventError(fmt.Errorf("error parsing webhook event: %s", err))
	}
	err = validate.Struct(event)
	if err != nil {
		return "", myerrors.NewMalformedEventError(fmt.Errorf("invalid webhook event: %s", err))
	}

	reference := event.Data.Reference

	if !handledEvents[event.Event] {
		s.logger.Log(c, reference, mylog.SeverityInfo, "Webhook: ignoring event %s", event.Event)
		return "Event ignored", nil
	}

	if reference == "" {
		return "", myerrors.NewMalformedEventError(fmt.Errorf("webhook event %s without reference", event.Event))
	}

	s.logger.Log(c, reference, mylog.SeverityInfo, "Webhook: %s received for reference %s", event.Event, reference)

	payment := payments.FromWebhook(event.Data)

	orderUID, err := s.writer.Write(c, payment, orders.StatusPaid)
	if err != nil {
		s.logger.Log(c, reference, mylog.SeverityError, "Webhook: order for reference %s NOT recorded, needs follow-up: %s", reference, err)
		return "Event acknowledged", nil
	}
	s.publishCompleted(c, payment, checkoutevents.CheckoutStatusSuccess, event.Event)

	s.logger.Log(c, reference, mylog.SeverityInfo, "Webhook: reference %s reconciled into order %s", reference, orderUID)

	return "Order processed successfully", nil
}

// verify is polled by the browser after returning from paystack
func (s *service) verify(c context.Context, reference string) (VerifyResult, error) {
	if reference == "" {
		return VerifyResult{}, myerrors.NewInvalidInputErrorf("reference required")
	}

	tx, err := s.payer.Verify(c, reference)
	if err != nil {
		if myerrors.IsKind(err, myerrors.KindNotFound) {
			return VerifyResult{}, myerrors.NewInvalidInputError(fmt.Errorf("payment verification failed: %s", err))
		}
		return VerifyResult{}, err
	}
	if tx.Reference == "" {
		tx.Reference = reference
	}

	payment := payments.FromVerification(tx)
	if s.cfg.IsMock() {
		payment.TransactionID = "MOCK-" + reference
	}

	result := VerifyResult{
		OrderNumber: reference,
		Email:       tx.CustomerEmail,
		Amount:      payment.Amount.InexactFloat64(),
		Items:       payment.LineItems,
		Reference:   reference,
		Status:      string(tx.Status),
	}

	if tx.Status != paystack.StatusSuccess {
		s.logger.Log(c, reference, mylog.SeverityInfo, "Verify: reference %s is %s, no order", reference, tx.Status)
		s.publishCompleted(c, payment, checkoutStatusOf(tx.Status), "verify="+string(tx.Status))
		return result, nil
	}

	result.OrderUID, err = s.writer.Write(c, payment, orders.StatusPaid)
	if err != nil {
		return VerifyResult{}, err
	}
	s.publishCompleted(c, payment, checkoutevents.CheckoutStatusSuccess, "verify="+string(tx.Status))

	return result, nil
}

// mockRedirect plays the part of paystack redirecting the shopper back after paying
func (s *service) mockRedirect(c context.Context, reference string) (string, error) {
	if s.confirmer == nil {
		return "", myerrors.NewNotFoundError(fmt.Errorf("mock transport not active"))
	}
	if reference == "" {
		return "", myerrors.NewInvalidInputErrorf("reference required")
	}

	tx, err := s.confirmer.Confirm(c, reference)
	if err != nil {
		return "", err
	}

	payment := payments.FromMockRedirect(tx)

	_, err = s.writer.Write(c, payment, orders.StatusPaid)
	if err != nil {
		return "", err
	}
	s.publishCompleted(c, payment, checkoutevents.CheckoutStatusSuccess, "mock-redirect")

	return fmt.Sprintf("%s/checkout/success?reference=%s", s.cfg.PublicBaseURL, url.QueryEscape(reference)), nil
}

// publishCompleted is informational: failing to publish never blocks reconciliation.
// A success status is only published once the order has been written.
func (s *service) publishCompleted(c context.Context, payment payments.ConfirmedPayment, status checkoutevents.CheckoutStatus, details string) {
	err := s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		CheckoutUID:           payment.Reference,
		ProviderName:          providerName,
		Source:                string(payment.Source),
		CheckoutStatus:        status,
		CheckoutStatusDetails: details,
	})
	if err != nil {
		s.logger.Log(c, payment.Reference, mylog.SeverityWarn, "Error publishing checkout-completed for %s: %s", payment.Reference, err)
	}
}

func checkoutStatusOf(status paystack.Status) checkoutevents.CheckoutStatus {
	switch status {
	case paystack.StatusSuccess:
		return checkoutevents.CheckoutStatusSuccess
	case paystack.StatusFailed:
		return checkoutevents.CheckoutStatusFailed
	default:
		return checkoutevents.CheckoutStatusPending
	}
}
