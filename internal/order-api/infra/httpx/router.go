package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/infra/httpx/middlewares"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	AdminUser      string
	AdminPassword  string
	Logger         *slog.Logger
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middlewares.RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestctx.HeaderXIdempotencyKey, requestctx.HeaderXRequestId},
		ExposedHeaders: []string{requestctx.HeaderXRequestId},
		MaxAge:         300,
	}))

	r.Get("/health", handler.Health)
	r.Get("/cardapio", handler.ListMenu)
	r.Get("/pedidos", handler.ListOrders)
	r.Post("/pedidos", handler.CreateOrder)

	r.Get("/", handler.StorefrontPage)
	r.With(middlewares.AdminAuth("admin", cfg.AdminUser, cfg.AdminPassword)).Get("/admin", handler.AdminPage)

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "order-api"
	}
	return otelhttp.NewHandler(r, serviceName)
}
