package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/helioretail/cartkit/api/controllers"
	cartcontrollers "github.com/helioretail/cartkit/api/controllers/cart"
	"github.com/helioretail/cartkit/api/middleware"
	cartsvc "github.com/helioretail/cartkit/internal/cart"
	"github.com/helioretail/cartkit/pkg/config"
	"github.com/helioretail/cartkit/pkg/logger"
	"github.com/helioretail/cartkit/pkg/money"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store *cartsvc.Store,
	formatter *money.Formatter,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Get("/", cartcontrollers.CartState(store, formatter, logg))
		r.Delete("/", cartcontrollers.CartClear(store, formatter, logg))
		r.Post("/fetch", cartcontrollers.CartFetch(store, formatter, logg))

		r.Route("/items", func(r chi.Router) {
			r.Post("/", cartcontrollers.ItemAdd(store, formatter, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", cartcontrollers.ItemRemove(store, formatter, logg))
				r.Put("/quantity", cartcontrollers.ItemSetQuantity(store, formatter, logg))
				r.Patch("/quantity", cartcontrollers.ItemUpdateQuantity(store, formatter, logg))
				r.Post("/increment", cartcontrollers.ItemIncrement(store, formatter, logg))
				r.Post("/decrement", cartcontrollers.ItemDecrement(store, formatter, logg))
			})
		})

		r.Route("/shipping", func(r chi.Router) {
			r.Put("/", cartcontrollers.ShippingUpdate(store, logg))
			r.Post("/estimate", cartcontrollers.ShippingEstimate(store, formatter, logg))
		})
	})

	return r
}
