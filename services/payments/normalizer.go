package payments

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shopreconciler/services/paystack"
)

const (
	defaultCurrency = "NGN"
	minorUnitsScale = -2
)

// FromWebhook normalizes the data of a charge notification
func FromWebhook(data WebhookData) ConfirmedPayment {
	metadata := metadataBag(data.Metadata)

	payment := newConfirmedPayment(SourceWebhook, data.Reference, data.Amount, data.Currency, data.Customer.Email, metadata)
	payment.TransactionID = transactionID(data.ID, "PS-", data.Reference)
	if data.Customer.ID != 0 {
		payment.CustomerID = strconv.FormatInt(data.Customer.ID, 10)
	}
	if payment.CustomerID == "" {
		payment.CustomerID = firstString(metadata, "paystackCustomerId", "clerkUserId")
	}

	return payment
}

// FromVerification normalizes the answer of a verify call
func FromVerification(tx paystack.Transaction) ConfirmedPayment {
	payment := newConfirmedPayment(SourceVerify, tx.Reference, tx.AmountMinorUnits, tx.Currency, tx.CustomerEmail, tx.Metadata)
	payment.TransactionID = transactionID(tx.ID, "PS-", tx.Reference)
	payment.CustomerID = tx.CustomerID
	if payment.CustomerID == "" {
		payment.CustomerID = firstString(tx.Metadata, "paystackCustomerId", "clerkUserId")
	}
	if payment.Email == "" {
		payment.Email = "no-email@example.com"
	}

	return payment
}

// FromMockRedirect normalizes a transaction confirmed by the mock transport
func FromMockRedirect(tx paystack.Transaction) ConfirmedPayment {
	payment := newConfirmedPayment(SourceMockRedirect, tx.Reference, tx.AmountMinorUnits, tx.Currency, tx.CustomerEmail, tx.Metadata)
	payment.TransactionID = "MOCK-" + tx.Reference
	payment.CustomerID = firstString(tx.Metadata, "paystackCustomerId", "clerkUserId")
	if payment.CustomerID == "" {
		payment.CustomerID = "mock-user"
	}
	if payment.UserID == "" {
		payment.UserID = "mock-user"
	}
	payment.CustomerName = valueOrDefault(firstString(tx.Metadata, "userName", "customerName"), "Mock Customer")

	return payment
}

func newConfirmedPayment(source Source, reference string, amountMinorUnits int64, currency string, email string, metadata map[string]any) ConfirmedPayment {
	if metadata == nil {
		metadata = map[string]any{}
	}
	lineItems, encoding := ParseLineItems(metadata)

	discount := decimal.Zero
	if value, found := firstNumber(metadata, "discount"); found {
		discount = decimal.NewFromFloat(value)
	}

	if currency == "" {
		currency = defaultCurrency
	}

	return ConfirmedPayment{
		Source:            source,
		Reference:         reference,
		Email:             email,
		Amount:            MinorToMajor(amountMinorUnits),
		AmountMinorUnits:  amountMinorUnits,
		Currency:          currency,
		LineItems:         lineItems,
		LineItemsEncoding: encoding,
		Discount:          discount,
		PromoCode:         firstString(metadata, "promoCode"),
		UserID:            firstString(metadata, "userId", "clerkUserId"),
		CustomerName:      valueOrDefault(firstString(metadata, "userName", "customerName"), email),
		Metadata:          metadata,
	}
}

// MinorToMajor converts kobo to naira without floating point rounding
func MinorToMajor(amountMinorUnits int64) decimal.Decimal {
	return decimal.New(amountMinorUnits, minorUnitsScale)
}

// MajorToMinor converts naira to kobo, rounding half away from zero
func MajorToMinor(amount decimal.Decimal) int64 {
	return amount.Shift(-minorUnitsScale).Round(0).IntPart()
}

// metadataBag accepts an object or an encoded object; anything else becomes an empty bag
func metadataBag(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case string:
		metadata := map[string]any{}
		if json.Unmarshal([]byte(v), &metadata) == nil && metadata != nil {
			return metadata
		}
		return map[string]any{}
	default:
		return map[string]any{}
	}
}

func transactionID(id int64, prefix string, reference string) string {
	if id != 0 {
		return strconv.FormatInt(id, 10)
	}
	return prefix + reference
}

func valueOrDefault(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
