package orders

import (
	"time"

	"github.com/MarcGrol/shopreconciler/services/payments"
)

type Status string

const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// Order is stored under its payment reference: at most one per reference
type Order struct {
	UID                  string              `json:"_id"`
	OrderNumber          string              `json:"orderNumber"`
	PaymentReference     string              `json:"paystackReference"`
	PaymentTransactionID string              `json:"paystackTransactionId"`
	PaymentCustomerID    string              `json:"paystackCustomerId"`
	UserID               string              `json:"clerkUserId"`
	CustomerName         string              `json:"customerName"`
	Email                string              `json:"email"`
	PromoCode            string              `json:"promoCode,omitempty"`
	LineItems            []payments.LineItem `json:"products"`
	TotalPrice           float64             `json:"totalPrice"`
	Currency             string              `json:"currency"`
	DiscountAmount       float64             `json:"amountDiscount"`
	Status               Status              `json:"status"`
	OrderDate            time.Time           `json:"orderDate"`
	RawMetadata          string              `json:"metadata,omitempty" datastore:",noindex"`
}

type OrderList struct {
	Orders []Order `json:"orders"`
}
