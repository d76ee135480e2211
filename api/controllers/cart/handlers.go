// Package cart exposes the session store's operations over HTTP. The
// handlers are the only mutation path into the store; everything they
// return is read back through snapshots and derived values.
package cart

import (
	"net/http"

	"github.com/helioretail/cartkit/api/responses"
	"github.com/helioretail/cartkit/api/validators"
	cartsvc "github.com/helioretail/cartkit/internal/cart"
	"github.com/helioretail/cartkit/internal/shipping"
	pkgerrors "github.com/helioretail/cartkit/pkg/errors"
	"github.com/helioretail/cartkit/pkg/logger"
	"github.com/helioretail/cartkit/pkg/money"
)

// CartState returns the current snapshot with derived and display totals.
func CartState(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// CartFetch runs the initial product load and reports the settled state.
func CartFetch(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithOperation(r.Context(), "fetch_initial_products")
		store.FetchInitialProducts(ctx)

		if snapshot := store.Snapshot(); snapshot.Error != "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, snapshot.Error))
			return
		}
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ItemAdd creates a product in the catalog and appends it to the cart.
func ItemAdd(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithOperation(r.Context(), "add_new_item")
		if !store.AddNewItem(ctx) {
			msg := store.Snapshot().Error
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, msg))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(store, formatter))
	}
}

// ItemSetQuantity sets a line's quantity exactly; values outside [1, 99]
// leave the line unchanged.
func ItemSetQuantity(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload QuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.SetItemQuantity(id, payload.Quantity)
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ItemUpdateQuantity is the unclamped variant: any positive quantity is
// applied as-is, zero and below are ignored.
func ItemUpdateQuantity(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload QuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(id, payload.Quantity)
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ItemIncrement raises a line's quantity by one.
func ItemIncrement(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.IncrementQuantity(id)
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ItemDecrement lowers a line's quantity by one, removing it at one.
func ItemDecrement(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.DecrementQuantity(id)
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ItemRemove deletes a line. Unknown ids leave the cart unchanged.
func ItemRemove(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := itemIDFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		store.RemoveItem(id)
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// CartClear empties the cart and resets the shipping cost.
func CartClear(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.ClearCart()
		responses.WriteSuccess(w, newCartView(store, formatter))
	}
}

// ShippingUpdate merges a partial address into the session and reports
// the merged address together with its form validation result. The merge
// always applies; validation is advisory for the form.
func ShippingUpdate(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ShippingUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateShippingInfo(payload.toUpdate())

		info := store.Snapshot().ShippingInfo
		form := shipping.NewForm(info)
		valid := form.Validate()
		responses.WriteSuccess(w, ShippingView{
			ShippingInfo: info,
			Valid:        valid,
			Errors:       form.Errors(),
		})
	}
}

// ShippingEstimate runs the simulated rate lookup.
func ShippingEstimate(store *cartsvc.Store, formatter *money.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithOperation(r.Context(), "calculate_shipping")
		cost := store.CalculateShipping(ctx)
		responses.WriteSuccess(w, EstimateView{
			ShippingCost: cost,
			Display:      formatter.Format(store.Snapshot().ShippingCost),
		})
	}
}
