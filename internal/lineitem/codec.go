// Package lineitem decodes the embedded line-item payload stored on each
// order. The import pipeline persists line items as a JSON-like string that
// uses single quotes around keys and string values; this package is the only
// place that convention is understood.
package lineitem

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Item is one product entry within an order.
type Item struct {
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// DecodeError reports a line-item payload that failed to parse after quote
// normalization. It identifies the owning order so operators can find the
// offending row in the source data.
type DecodeError struct {
	OrderID string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("order %s: malformed line items: %v", e.OrderID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses a single-quoted line-item payload into structured items.
func Decode(raw string) ([]Item, error) {
	normalized := strings.ReplaceAll(raw, "'", `"`)
	var items []Item
	if err := json.Unmarshal([]byte(normalized), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DecodeOrder is Decode with the owning order attached to any failure.
// Every call site that unpacks an order's line items goes through here, so a
// bad payload always surfaces as a *DecodeError and is never silently
// replaced with an empty list.
func DecodeOrder(orderID, raw string) ([]Item, error) {
	items, err := Decode(raw)
	if err != nil {
		return nil, &DecodeError{OrderID: orderID, Err: err}
	}
	return items, nil
}

// Encode renders items using the single-quote convention the store expects.
// It is the inverse of Decode for payloads whose values contain no quote
// characters, which holds for the identifier/number shape of Item.
func Encode(items []Item) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), `"`, "'"), nil
}
