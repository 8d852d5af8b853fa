package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stitchcairo/storefront-backend/api/controllers"
	"github.com/stitchcairo/storefront-backend/api/middleware"
	"github.com/stitchcairo/storefront-backend/internal/catalog"
	checkoutsvc "github.com/stitchcairo/storefront-backend/internal/checkout"
	"github.com/stitchcairo/storefront-backend/pkg/config"
	"github.com/stitchcairo/storefront-backend/pkg/db"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPing db.Pinger,
	redisPing redis.Pinger,
	catalogService catalog.Service,
	cartSessions controllers.CartSessions,
	checkoutService checkoutsvc.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Health(cfg, logg, dbPing, redisPing))

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", controllers.CreateCart(cartSessions, logg))
			r.Get("/", controllers.GetCart(cartSessions, cfg.Checkout, logg))
			r.Delete("/", controllers.ClearCart(cartSessions, logg))

			r.Route("/items", func(r chi.Router) {
				r.Post("/", controllers.AddCartItem(cartSessions, logg))
				r.Patch("/", controllers.UpdateCartItem(cartSessions, logg))
				r.Delete("/", controllers.RemoveCartItem(cartSessions, logg))
			})
		})

		r.Post("/orders", controllers.SubmitOrder(checkoutService, logg))
	})

	return r
}
