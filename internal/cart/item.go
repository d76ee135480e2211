// Package cart implements the session cart: the item loader backed by the
// remote catalog, and the state store with its mutation operations and
// derived totals.
package cart

import "github.com/shopspring/decimal"

// Item is one distinct product line in the cart. IDs are unique within a
// cart and stable for the item's lifetime; quantities reachable through
// the store's operations stay in [1, 99], an item driven to zero is
// removed instead.
type Item struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

// LineTotal returns price times quantity for this line.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals is the fully derived pricing breakdown; it is computed on read
// and never stored.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}
