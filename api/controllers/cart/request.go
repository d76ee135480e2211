package cart

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helioretail/cartkit/internal/shipping"
	pkgerrors "github.com/helioretail/cartkit/pkg/errors"
)

// QuantityRequest carries the desired quantity for a cart line. Bounds
// are not enforced here: the store's operations define their own no-op
// semantics for out-of-range values.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ShippingUpdateRequest is a partial shipping address; absent fields are
// left untouched by the merge.
type ShippingUpdateRequest struct {
	Country *string `json:"country"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
}

func (r ShippingUpdateRequest) toUpdate() shipping.Update {
	return shipping.Update{Country: r.Country, State: r.State, ZipCode: r.ZipCode}
}

func itemIDFromURL(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}
	return id, nil
}
