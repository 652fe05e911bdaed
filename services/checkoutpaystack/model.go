package checkoutpaystack

import (
	"context"

	"github.com/MarcGrol/shopreconciler/services/orders"
	"github.com/MarcGrol/shopreconciler/services/payments"
)

//go:generate mockgen -source=model.go -package checkoutpaystack -destination orderwriter_mock.go OrderWriter
type OrderWriter interface {
	Write(c context.Context, payment payments.ConfirmedPayment, status orders.Status) (string, error)
}

// VerifyResult is returned to the browser polling for the outcome of its checkout
type VerifyResult struct {
	OrderNumber string              `json:"orderNumber"`
	OrderUID    string              `json:"orderId,omitempty"`
	Email       string              `json:"email"`
	Amount      float64             `json:"amount"`
	Items       []payments.LineItem `json:"items"`
	Reference   string              `json:"reference"`
	Status      string              `json:"status"`
}

var handledEvents = map[string]bool{
	"charge.success":         true,
	"paymentrequest.success": true,
}
