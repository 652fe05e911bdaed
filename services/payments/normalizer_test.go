package payments

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/shopreconciler/services/paystack"
)

func TestMinorToMajor(t *testing.T) {
	assert.Equal(t, "1500.00", MinorToMajor(150000).StringFixed(2))
	assert.True(t, decimal.RequireFromString("1500").Equal(MinorToMajor(150000)))
	assert.Equal(t, "0.01", MinorToMajor(1).String())
	assert.Equal(t, "0", MinorToMajor(0).String())
	assert.Equal(t, int64(150000), MajorToMinor(decimal.RequireFromString("1500.00")))
	assert.Equal(t, int64(1999), MajorToMinor(decimal.RequireFromString("19.985")))
}

func TestFromWebhook(t *testing.T) {
	t.Run("Structured metadata", func(t *testing.T) {
		// given
		event := WebhookEvent{}
		err := json.Unmarshal([]byte(`{
			"event":"charge.success",
			"data":{
				"id":302961,
				"reference":"R1",
				"amount":150000,
				"currency":"NGN",
				"customer":{"id":68324,"email":"a@b.c"},
				"metadata":{
					"cartItems":[{"id":"p1","name":"Shoe","price":2500,"quantity":1}],
					"userId":"user_1",
					"customerName":"Ada",
					"promoCode":"SUMMER",
					"discount":1000
				}
			}
		}`), &event)
		assert.NoError(t, err)

		// when
		payment := FromWebhook(event.Data)

		// then
		assert.Equal(t, SourceWebhook, payment.Source)
		assert.Equal(t, "R1", payment.Reference)
		assert.Equal(t, "302961", payment.TransactionID)
		assert.Equal(t, "68324", payment.CustomerID)
		assert.Equal(t, "a@b.c", payment.Email)
		assert.Equal(t, "1500.00", payment.Amount.StringFixed(2))
		assert.Equal(t, int64(150000), payment.AmountMinorUnits)
		assert.Equal(t, "NGN", payment.Currency)
		assert.Equal(t, []LineItem{shoe}, payment.LineItems)
		assert.Equal(t, EncodingCartItemsList, payment.LineItemsEncoding)
		assert.Equal(t, "1000", payment.Discount.String())
		assert.Equal(t, "SUMMER", payment.PromoCode)
		assert.Equal(t, "user_1", payment.UserID)
		assert.Equal(t, "Ada", payment.CustomerName)
	})

	t.Run("Encoded metadata and minimal data", func(t *testing.T) {
		// when
		payment := FromWebhook(WebhookData{
			Reference: "R2",
			Amount:    99,
			Customer:  WebhookCustomer{Email: "a@b.c"},
			Metadata:  `{"items":"[{\"_id\":\"p1\",\"quantity\":3}]","clerkUserId":"clerk_1"}`,
		})

		// then
		assert.Equal(t, "PS-R2", payment.TransactionID)
		assert.Equal(t, "clerk_1", payment.CustomerID)
		assert.Equal(t, "clerk_1", payment.UserID)
		assert.Equal(t, "a@b.c", payment.CustomerName)
		assert.Equal(t, "NGN", payment.Currency)
		assert.Equal(t, "0.99", payment.Amount.String())
		assert.True(t, payment.Discount.IsZero())
		assert.Equal(t, []LineItem{{ProductID: "p1", Quantity: 3}}, payment.LineItems)
		assert.Equal(t, EncodingItemsString, payment.LineItemsEncoding)
	})

	t.Run("Unusable metadata", func(t *testing.T) {
		// when
		payment := FromWebhook(WebhookData{Reference: "R3", Metadata: ""})

		// then
		assert.Empty(t, payment.LineItems)
		assert.Equal(t, EncodingNone, payment.LineItemsEncoding)
		assert.Equal(t, map[string]any{}, payment.Metadata)
	})
}

func TestFromVerification(t *testing.T) {
	// given
	tx := paystack.Transaction{
		ID:               4099260516,
		Reference:        "R1",
		Status:           paystack.StatusSuccess,
		AmountMinorUnits: 250000,
		Currency:         "NGN",
		CustomerID:       "181873746",
		Metadata: map[string]any{
			"cartItems": encodedCart,
			"userName":  "Ada L.",
		},
	}

	// when
	payment := FromVerification(tx)

	// then
	assert.Equal(t, SourceVerify, payment.Source)
	assert.Equal(t, "4099260516", payment.TransactionID)
	assert.Equal(t, "181873746", payment.CustomerID)
	assert.Equal(t, "no-email@example.com", payment.Email)
	assert.Equal(t, "Ada L.", payment.CustomerName)
	assert.Equal(t, "2500", payment.Amount.String())
	assert.Equal(t, []LineItem{shoe, sock}, payment.LineItems)
}

func TestFromMockRedirect(t *testing.T) {
	// given
	tx := paystack.Transaction{
		Reference:        "R1",
		Status:           paystack.StatusSuccess,
		AmountMinorUnits: 250000,
		CustomerEmail:    "a@b.c",
		Metadata: map[string]any{
			"cartItems": []any{map[string]any{"id": "p1", "name": "Shoe", "price": 2500.0, "quantity": 1.0}},
		},
	}

	// when
	payment := FromMockRedirect(tx)

	// then
	assert.Equal(t, SourceMockRedirect, payment.Source)
	assert.Equal(t, "MOCK-R1", payment.TransactionID)
	assert.Equal(t, "mock-user", payment.CustomerID)
	assert.Equal(t, "mock-user", payment.UserID)
	assert.Equal(t, "Mock Customer", payment.CustomerName)
	assert.Equal(t, "NGN", payment.Currency)
	assert.Equal(t, "2500", payment.Amount.String())
	assert.Equal(t, []LineItem{shoe}, payment.LineItems)
}

func TestEquivalentAcrossEncodings(t *testing.T) {
	list := FromMockRedirect(paystack.Transaction{Reference: "R1", Metadata: map[string]any{"cartItems": decodedCart(t)}})
	asString := FromMockRedirect(paystack.Transaction{Reference: "R1", Metadata: map[string]any{"cartItems": encodedCart}})
	alternate := FromMockRedirect(paystack.Transaction{Reference: "R1", Metadata: map[string]any{"items": decodedCart(t)}})

	assert.Equal(t, list.LineItems, asString.LineItems)
	assert.Equal(t, list.LineItems, alternate.LineItems)
}
