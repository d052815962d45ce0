package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/daypass-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/daypass-backend/api/controllers/cart"
	"github.com/angelmondragon/daypass-backend/api/middleware"
	"github.com/angelmondragon/daypass-backend/internal/sessions"
	"github.com/angelmondragon/daypass-backend/pkg/config"
	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
	"github.com/angelmondragon/daypass-backend/pkg/redis"
)

// Params collects what the router wires into handlers. Redis is nil in memory mode, which
// disables readiness pings, rate limiting and idempotent replay.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	Redis       *redis.Client
	Sessions    *sessions.Manager
	Cart        sessions.CartService
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	var (
		pinger      controllers.Pinger
		rateStore   middleware.RateLimiterStore
		replayStore redis.IdempotencyStore
	)
	if p.Redis != nil {
		pinger = p.Redis
		rateStore = p.Redis
		replayStore = p.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(p.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger, logg))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	sessionPolicy := middleware.NewRateLimitPolicy("sessions", cfg.RateLimit.CartWindow, cfg.RateLimit.CartLimit)
	cartPolicy := middleware.NewRateLimitPolicy("cart", cfg.RateLimit.CartWindow, cfg.RateLimit.CartLimit)
	requireSession := middleware.Session(cfg.Session, p.Sessions, logg)
	replay := middleware.Idempotency(replayStore, logg)

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.With(middleware.RateLimit(sessionPolicy, rateStore, logg)).Post("/", controllers.SessionCreate(p.Sessions, cfg.Session, logg))
		r.With(requireSession).Delete("/current", controllers.SessionEnd(p.Sessions, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(requireSession)
		r.Use(middleware.RateLimit(cartPolicy, rateStore, logg))

		r.Get("/", cartcontrollers.CartFetch(p.Cart, logg))
		r.Delete("/", cartcontrollers.CartClear(p.Cart, logg))
		r.With(replay).Post("/items", cartcontrollers.CartAddItem(p.Cart, logg))
		r.Get("/items/{productId}", cartcontrollers.CartIsInCart(p.Cart, logg))
		r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(p.Cart, logg))
		r.With(replay).Put("/escape-date", cartcontrollers.CartSetEscapeDate(p.Cart, logg))
		r.Get("/badge", cartcontrollers.CartBadge(p.Cart, logg))
		r.Get("/hotel", cartcontrollers.CartHotel(p.Cart, logg))
		r.Get("/checkout", cartcontrollers.CartCheckout(p.Cart, logg))
	})

	return r
}
