package checkoutapi

import (
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
)

// Checkout is the form the storefront posts to start paying for a cart
type Checkout struct {
	Reference    string  `form:"reference"`
	Email        string  `form:"email" validate:"required,email"`
	Items        []Item  `form:"items" validate:"required,min=1,dive"`
	UserID       string  `form:"userId"`
	CustomerName string  `form:"customerName"`
	PromoCode    string  `form:"promoCode"`
	Discount     float64 `form:"discount" validate:"gte=0"`
}

type Item struct {
	ID       string  `form:"id" validate:"required"`
	Name     string  `form:"name"`
	Price    float64 `form:"price" validate:"gte=0"`
	Quantity int     `form:"quantity" validate:"gte=1"`
	Image    string  `form:"image"`
}

var validate = validator.New()

func NewFromRequest(r *http.Request) (Checkout, error) {
	err := r.ParseForm()
	if err != nil {
		return Checkout{}, myerrors.NewInvalidInputError(err)
	}
	return NewFromValues(r.Form)
}

func NewFromValues(values url.Values) (Checkout, error) {
	checkout := Checkout{}
	err := formcodec.NewDecoder().Decode(&checkout, values)
	if err != nil {
		return checkout, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
	}

	return checkout, nil
}

func (c Checkout) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid checkout: %s", err))
	}
	return nil
}

func (c Checkout) ToForm() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(c)
	if err != nil {
		return nil, fmt.Errorf("error encoding form: %s", err)
	}

	return values, nil
}

// Total is the sum of the items minus the discount, never below zero
func (c Checkout) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total = total.Sub(decimal.NewFromFloat(c.Discount))
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Metadata is what travels along with the transaction and comes back in every notification
func (c Checkout) Metadata() map[string]any {
	cartItems := make([]any, 0, len(c.Items))
	for _, item := range c.Items {
		cartItems = append(cartItems, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"price":    item.Price,
			"quantity": item.Quantity,
			"image":    item.Image,
		})
	}
	return map[string]any{
		"cartItems":    cartItems,
		"userId":       c.UserID,
		"customerName": c.CustomerName,
		"promoCode":    c.PromoCode,
		"discount":     c.Discount,
	}
}
