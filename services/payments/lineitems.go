package payments

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type cartKey struct {
	name           string
	listEncoding   LineItemsEncoding
	stringEncoding LineItemsEncoding
}

// Order of the fallback chain: structured list, encoded string, then the alternate key
var cartKeys = []cartKey{
	{name: "cartItems", listEncoding: EncodingCartItemsList, stringEncoding: EncodingCartItemsString},
	{name: "items", listEncoding: EncodingItemsList, stringEncoding: EncodingItemsString},
}

// ParseLineItems never fails: an unusable cart yields zero line items
func ParseLineItems(metadata map[string]any) ([]LineItem, LineItemsEncoding) {
	sawUnparseable := false
	for _, key := range cartKeys {
		raw, found := metadata[key.name]
		if !found || raw == nil {
			continue
		}

		if list, ok := asList(raw); ok {
			return parseList(list), key.listEncoding
		}

		if encoded, ok := raw.(string); ok {
			if strings.TrimSpace(encoded) == "" {
				continue
			}
			list, err := decodeList(encoded)
			if err != nil {
				sawUnparseable = true
				continue
			}
			return parseList(list), key.stringEncoding
		}

		sawUnparseable = true
	}

	if sawUnparseable {
		return []LineItem{}, EncodingUnparseable
	}
	return []LineItem{}, EncodingNone
}

func asList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case []map[string]any:
		list := make([]any, 0, len(v))
		for _, item := range v {
			list = append(list, item)
		}
		return list, true
	default:
		return nil, false
	}
}

func decodeList(encoded string) ([]any, error) {
	list := []any{}
	err := json.Unmarshal([]byte(encoded), &list)
	if err != nil {
		return nil, fmt.Errorf("error decoding line items: %s", err)
	}
	return list, nil
}

func parseList(list []any) []LineItem {
	items := make([]LineItem, 0, len(list))
	for _, raw := range list {
		fields, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, parseItem(fields))
	}
	return items
}

func parseItem(fields map[string]any) LineItem {
	product, _ := fields["product"].(map[string]any)

	item := LineItem{
		ProductID: firstString(fields, "id", "productId", "_id"),
		Name:      firstString(fields, "name"),
		ImageRef:  imageOf(fields),
		Quantity:  1,
	}
	if item.ProductID == "" {
		item.ProductID = firstString(product, "_id", "id", "productId")
	}
	if item.Name == "" {
		item.Name = firstString(product, "name")
	}
	if item.ImageRef == "" {
		item.ImageRef = imageOf(product)
	}

	if price, found := firstNumber(fields, "price"); found {
		item.UnitPrice = price
	} else if price, found := firstNumber(product, "price"); found {
		item.UnitPrice = price
	}

	if quantity, found := firstNumber(fields, "quantity"); found && quantity >= 1 {
		item.Quantity = int(math.Floor(math.Min(quantity, math.MaxInt32)))
	}

	return item
}

func imageOf(fields map[string]any) string {
	image := firstString(fields, "image", "imageUrl", "imageRef")
	if image != "" {
		return image
	}
	// image objects reference their asset
	if asObject, ok := fields["image"].(map[string]any); ok {
		if asset, ok := asObject["asset"].(map[string]any); ok {
			return firstString(asset, "_ref", "url")
		}
	}
	return ""
}

func firstString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// firstNumber only reports finite values: NaN and infinities cannot be encoded as JSON
func firstNumber(fields map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if f, found := numberOf(fields[key]); found && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

func numberOf(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
