package payments

import (
	"github.com/shopspring/decimal"
)

type Source string

const (
	SourceWebhook      Source = "webhook"
	SourceVerify       Source = "verify"
	SourceMockRedirect Source = "mock-redirect"
)

// LineItemsEncoding tells in which shape the cart arrived in the metadata
type LineItemsEncoding string

const (
	EncodingCartItemsList   LineItemsEncoding = "cartItems-list"
	EncodingCartItemsString LineItemsEncoding = "cartItems-string"
	EncodingItemsList       LineItemsEncoding = "items-list"
	EncodingItemsString     LineItemsEncoding = "items-string"
	EncodingNone            LineItemsEncoding = "none"
	EncodingUnparseable     LineItemsEncoding = "unparseable"
)

type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageRef  string  `json:"image,omitempty" datastore:",noindex"`
}

// ConfirmedPayment is the canonical record every transport reduces to
type ConfirmedPayment struct {
	Source            Source
	Reference         string
	TransactionID     string
	CustomerID        string
	Email             string
	Amount            decimal.Decimal
	AmountMinorUnits  int64
	Currency          string
	LineItems         []LineItem
	LineItemsEncoding LineItemsEncoding
	Discount          decimal.Decimal
	PromoCode         string
	UserID            string
	CustomerName      string
	Metadata          map[string]any
}

// WebhookEvent is the envelope paystack posts
type WebhookEvent struct {
	Event string      `json:"event" validate:"required"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	ID        int64           `json:"id"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Amount    int64           `json:"amount" validate:"gte=0"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at"`
	Customer  WebhookCustomer `json:"customer"`
	Metadata  any             `json:"metadata"`
}

type WebhookCustomer struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	CustomerCode string `json:"customer_code"`
}
