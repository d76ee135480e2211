package cart

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/helioretail/cartkit/internal/shipping"
	pkgerrors "github.com/helioretail/cartkit/pkg/errors"
	"github.com/helioretail/cartkit/pkg/logger"
)

const (
	maxQuantity = 99

	// Shown when a load/add failure carries no message of its own.
	fallbackLoadError = "Failed to load cart"
	fallbackAddError  = "Failed to add item"

	// Simulated rate lookup draws uniformly from [5, 24].
	shippingRateMin  = 5
	shippingRateSpan = 20
)

// Loader is the store's view of the item mapper.
type Loader interface {
	LoadInitialItems(ctx context.Context) ([]Item, error)
	AddProduct(ctx context.Context, existing []Item) ([]Item, error)
}

// Store owns one session's cart state. All mutation goes through its
// operations; they behave as if serialized in call order. The loading and
// error flags are observable while a fetch or add is in flight, and a
// competing operation may land before an in-flight call resolves — the
// last write to items wins, there is no version check and no cancellation
// of in-flight loads.
type Store struct {
	loader        Loader
	logg          *logger.Logger
	taxRate       decimal.Decimal
	estimateDelay time.Duration

	mu           sync.Mutex
	items        []Item
	isLoading    bool
	errMsg       string
	shippingCost decimal.Decimal
	shippingInfo shipping.Info
}

// StoreConfig carries the pricing constants injected at construction.
type StoreConfig struct {
	TaxRate       decimal.Decimal
	EstimateDelay time.Duration
}

// NewStore builds an empty session store. One instance exists per
// session; tests construct as many independent ones as they need.
func NewStore(loader Loader, cfg StoreConfig, logg *logger.Logger) *Store {
	return &Store{
		loader:        loader,
		logg:          logg,
		taxRate:       cfg.TaxRate,
		estimateDelay: cfg.EstimateDelay,
		shippingCost:  decimal.Zero,
	}
}

// Snapshot is a point-in-time copy of the readable state.
type Snapshot struct {
	Items        []Item          `json:"items"`
	IsLoading    bool            `json:"isLoading"`
	Error        string          `json:"error,omitempty"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	ShippingInfo shipping.Info   `json:"shippingInfo"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return Snapshot{
		Items:        items,
		IsLoading:    s.isLoading,
		Error:        s.errMsg,
		ShippingCost: s.shippingCost,
		ShippingInfo: s.shippingInfo,
	}
}

// FetchInitialProducts loads the initial batch and replaces the items on
// success. On failure the previous items are kept and the failure message
// lands in the error field; the loading flag is cleared either way.
func (s *Store) FetchInitialProducts(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.loader.LoadInitialItems(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.errMsg = pkgerrors.DisplayMessage(err, fallbackLoadError)
		s.logg.Error(ctx, "initial cart load failed", err)
		return
	}
	s.items = items
	s.logg.Info(s.logg.WithField(ctx, "items", len(items)), "initial cart loaded")
}

// AddNewItem creates a product through the loader and appends the mapped
// item. Reports success; on failure the cart is untouched and the error
// field carries the failure message, so callers distinguishing "nothing
// changed" must check both.
func (s *Store) AddNewItem(ctx context.Context) bool {
	s.mu.Lock()
	s.errMsg = ""
	existing := make([]Item, len(s.items))
	copy(existing, s.items)
	s.mu.Unlock()

	items, err := s.loader.AddProduct(ctx, existing)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errMsg = pkgerrors.DisplayMessage(err, fallbackAddError)
		s.logg.Error(ctx, "add item failed", err)
		return false
	}
	s.items = items
	return true
}

// UpdateQuantity sets the matching item's quantity to qty exactly. A qty
// of zero or less is ignored; no upper bound applies here.
func (s *Store) UpdateQuantity(id, qty int) {
	if qty <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item := s.find(id); item != nil {
		item.Quantity = qty
	}
}

// SetItemQuantity sets the quantity only when qty is within [1, 99];
// anything else is a no-op.
func (s *Store) SetItemQuantity(id, qty int) {
	if qty < 1 || qty > maxQuantity {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if item := s.find(id); item != nil {
		item.Quantity = qty
	}
}

// IncrementQuantity raises the matching item's quantity by one.
func (s *Store) IncrementQuantity(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item := s.find(id); item != nil {
		item.Quantity++
	}
}

// DecrementQuantity lowers the quantity by one, removing the item
// entirely when it stands at one.
func (s *Store) DecrementQuantity(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.find(id)
	if item == nil {
		return
	}
	if item.Quantity > 1 {
		item.Quantity--
		return
	}
	s.remove(id)
}

// RemoveItem drops the item with the matching id, preserving the relative
// order of the rest. Unknown ids are a no-op.
func (s *Store) RemoveItem(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

// ClearCart empties the items and resets the shipping cost.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.shippingCost = decimal.Zero
}

// UpdateShippingInfo shallow-merges the partial address into the current one.
func (s *Store) UpdateShippingInfo(update shipping.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingInfo = s.shippingInfo.Merge(update)
}

// CalculateShipping simulates a rate lookup: after a fixed delay it
// assigns a uniformly drawn integer cost and returns it. Stub for a real
// carrier rate call, hence no failure path.
func (s *Store) CalculateShipping(ctx context.Context) int {
	if s.estimateDelay > 0 {
		time.Sleep(s.estimateDelay)
	}

	cost := rand.IntN(shippingRateSpan) + shippingRateMin

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingCost = decimal.NewFromInt(int64(cost))
	s.logg.Info(s.logg.WithField(ctx, "shipping_cost", cost), "shipping estimated")
	return cost
}

// Subtotal is the sum of price times quantity over all items.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotal()
}

// Tax is the subtotal times the configured tax rate.
func (s *Store) Tax() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotal().Mul(s.taxRate)
}

// Total is subtotal plus tax plus shipping cost.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotal()
	return subtotal.Add(subtotal.Mul(s.taxRate)).Add(s.shippingCost)
}

// ItemCount is the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// CartTotals computes the full derived breakdown in one consistent read.
func (s *Store) CartTotals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := s.subtotal()
	tax := subtotal.Mul(s.taxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: s.shippingCost,
		Total:    subtotal.Add(tax).Add(s.shippingCost),
	}
}

// callers hold s.mu for all helpers below.

func (s *Store) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

func (s *Store) find(id int) *Item {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Store) remove(id int) {
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
}
