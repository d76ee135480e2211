package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/helioretail/cartkit/internal/cart"
	"github.com/helioretail/cartkit/internal/shipping"
	"github.com/helioretail/cartkit/pkg/money"
)

// CartView is the read model handed to the view layer: the snapshot, the
// derived values, and display-ready totals.
type CartView struct {
	Items        []cartsvc.Item  `json:"items"`
	IsLoading    bool            `json:"isLoading"`
	Error        *string         `json:"error"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	ShippingInfo shipping.Info   `json:"shippingInfo"`
	ItemCount    int             `json:"itemCount"`
	IsEmpty      bool            `json:"isEmpty"`
	Totals       cartsvc.Totals  `json:"totals"`
	Display      DisplayTotals   `json:"display"`
}

// DisplayTotals carries the totals rendered with the configured currency
// and locale.
type DisplayTotals struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
	Symbol   string `json:"symbol"`
}

// ShippingView reports the merged address and the form validation result.
type ShippingView struct {
	ShippingInfo shipping.Info     `json:"shippingInfo"`
	Valid        bool              `json:"valid"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// EstimateView is the outcome of a shipping estimate.
type EstimateView struct {
	ShippingCost int    `json:"shippingCost"`
	Display      string `json:"display"`
}

func newCartView(store *cartsvc.Store, formatter *money.Formatter) CartView {
	snapshot := store.Snapshot()
	totals := store.CartTotals()

	var errMsg *string
	if snapshot.Error != "" {
		errMsg = &snapshot.Error
	}

	count := 0
	for _, item := range snapshot.Items {
		count += item.Quantity
	}

	return CartView{
		Items:        snapshot.Items,
		IsLoading:    snapshot.IsLoading,
		Error:        errMsg,
		ShippingCost: snapshot.ShippingCost,
		ShippingInfo: snapshot.ShippingInfo,
		ItemCount:    count,
		IsEmpty:      len(snapshot.Items) == 0,
		Totals:       totals,
		Display: DisplayTotals{
			Subtotal: formatter.Format(totals.Subtotal),
			Tax:      formatter.Format(totals.Tax),
			Shipping: formatter.Format(totals.Shipping),
			Total:    formatter.Format(totals.Total),
			Symbol:   formatter.Symbol(),
		},
	}
}
