package checkoutapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
)

var checkout = Checkout{
	Reference:    "R1",
	Email:        "ada@example.com",
	UserID:       "user_1",
	CustomerName: "Ada",
	PromoCode:    "SUMMER",
	Discount:     500,
	Items: []Item{
		{
			ID:       "p1",
			Name:     "Shoe",
			Price:    2500,
			Quantity: 1,
			Image:    "image-shoe",
		},
		{
			ID:       "p2",
			Name:     "Sock",
			Price:    300.5,
			Quantity: 2,
		},
	},
}

func TestEncodeDecodeSame(t *testing.T) {
	//  encode followed by decode must end up same

	values, err := checkout.ToForm()
	assert.NoError(t, err)
	checkoutAgain, err := NewFromValues(values)
	assert.NoError(t, err)

	assert.Equal(t, checkout, checkoutAgain)
}

func TestDecode(t *testing.T) {
	form := url.Values{
		"reference":         []string{"R1"},
		"email":             []string{"ada@example.com"},
		"userId":            []string{"user_1"},
		"customerName":      []string{"Ada"},
		"promoCode":         []string{"SUMMER"},
		"discount":          []string{"500"},
		"items[0].id":       []string{"p1"},
		"items[0].name":     []string{"Shoe"},
		"items[0].price":    []string{"2500"},
		"items[0].quantity": []string{"1"},
		"items[0].image":    []string{"image-shoe"},
		"items[1].id":       []string{"p2"},
		"items[1].name":     []string{"Sock"},
		"items[1].price":    []string{"300.5"},
		"items[1].quantity": []string{"2"},
	}

	checkoutAgain, err := NewFromValues(form)
	assert.NoError(t, err)
	assert.Equal(t, checkout, checkoutAgain)
}

func TestDecodeInvalidNumber(t *testing.T) {
	_, err := NewFromValues(url.Values{"items[0].price": []string{"lots"}})
	assert.True(t, myerrors.IsKind(err, myerrors.KindInvalidInput))
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, checkout.Validate())
	})

	t.Run("Invalid email", func(t *testing.T) {
		invalid := checkout
		invalid.Email = "not-an-email"
		assert.True(t, myerrors.IsKind(invalid.Validate(), myerrors.KindInvalidInput))
	})

	t.Run("Empty cart", func(t *testing.T) {
		invalid := checkout
		invalid.Items = nil
		assert.Error(t, invalid.Validate())
	})

	t.Run("Item without id", func(t *testing.T) {
		invalid := checkout
		invalid.Items = []Item{{Name: "Shoe", Price: 1, Quantity: 1}}
		assert.Error(t, invalid.Validate())
	})

	t.Run("Zero quantity", func(t *testing.T) {
		invalid := checkout
		invalid.Items = []Item{{ID: "p1", Price: 1, Quantity: 0}}
		assert.Error(t, invalid.Validate())
	})

	t.Run("Negative discount", func(t *testing.T) {
		invalid := checkout
		invalid.Discount = -1
		assert.Error(t, invalid.Validate())
	})
}

func TestTotal(t *testing.T) {
	assert.Equal(t, "2601", checkout.Total().String())

	noDiscount := checkout
	noDiscount.Discount = 0
	assert.Equal(t, "3101", noDiscount.Total().String())

	tooMuchDiscount := checkout
	tooMuchDiscount.Discount = 10000
	assert.True(t, tooMuchDiscount.Total().IsZero())
}

func TestMetadata(t *testing.T) {
	metadata := checkout.Metadata()
	assert.Equal(t, "user_1", metadata["userId"])
	assert.Equal(t, "Ada", metadata["customerName"])
	assert.Equal(t, "SUMMER", metadata["promoCode"])
	assert.Equal(t, 500.0, metadata["discount"])
	assert.Len(t, metadata["cartItems"], 2)
	assert.Equal(t, map[string]any{"id": "p1", "name": "Shoe", "price": 2500.0, "quantity": 1, "image": "image-shoe"}, metadata["cartItems"].([]any)[0])
}
