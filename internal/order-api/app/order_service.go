package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/cache"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
)

const idempotencyTTL = 24 * time.Hour

var _ ports.OrderService = (*OrderService)(nil)

// OrderService lists the menu and orders and creates new orders. Creation is
// single-writer: id stamping and the append happen under one mutex, so ids
// in the store are strictly increasing in append order.
type OrderService struct {
	menu   ports.MenuRepository
	orders ports.OrderRepository
	cache  cache.Cache // nil-safe: idempotency disabled if nil
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
	newID  func() (string, error)

	mu sync.Mutex
}

type Option func(*OrderService)

// WithCache enables X-Idempotency-Key handling for CreateOrder.
func WithCache(c cache.Cache) Option {
	return func(s *OrderService) { s.cache = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *OrderService) { s.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *OrderService) { s.newID = gen }
}

func NewOrderService(menu ports.MenuRepository, orders ports.OrderRepository, opts ...Option) *OrderService {
	s := &OrderService{
		menu:   menu,
		orders: orders,
		logger: slog.Default(),
		tracer: otel.Tracer("github.com/jcmexdev/restaurant-orders/internal/order-api/app"),
		now:    time.Now,
		newID:  newOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newOrderID returns a UUIDv7; its string form sorts by creation time.
func newOrderID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ListMenu never fails: an unreadable store is logged and served as empty.
func (s *OrderService) ListMenu(ctx context.Context) []entity.MenuItem {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListMenu")
	defer span.End()

	items, err := s.menu.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "menu store unreadable, serving empty menu", "error", err)
		return []entity.MenuItem{}
	}
	span.SetAttributes(attribute.Int("menu.items", len(items)))
	return items
}

// ListOrders never fails: an unreadable store is logged and served as empty.
func (s *OrderService) ListOrders(ctx context.Context) []entity.Order {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()

	orders, err := s.orders.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "order store unreadable, serving empty list", "error", err)
		return []entity.Order{}
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders
}

// CreateOrder validates, prices and appends a new order. Validation errors
// wrap entity.ErrInvalidInput. When idempotencyKey is set and a cache is
// configured, a repeated key returns the order created the first time.
func (s *OrderService) CreateOrder(ctx context.Context, idempotencyKey string, in entity.CreateOrderInput) (*entity.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	if err := in.Validate(); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		return nil, err
	}

	cacheKey := ""
	if idempotencyKey != "" && s.cache != nil {
		cacheKey = s.cache.GenerateKey("create-order", idempotencyKey)
		if prev := s.lookup(ctx, cacheKey); prev != nil {
			span.SetAttributes(attribute.Bool("order.replayed", true), attribute.String("order.id", prev.ID))
			s.logger.InfoContext(ctx, "replaying order for idempotency key",
				"order_id", prev.ID, "request_id", requestctx.RequestID(ctx))
			return prev, nil
		}
	}

	order, replayed, err := s.appendOrder(ctx, cacheKey, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append failed")
		s.logger.ErrorContext(ctx, "failed to persist order", "error", err, "request_id", requestctx.RequestID(ctx))
		return nil, err
	}

	if replayed {
		span.SetAttributes(attribute.Bool("order.replayed", true), attribute.String("order.id", order.ID))
		return order, nil
	}

	span.SetAttributes(attribute.String("order.id", order.ID), attribute.Float64("order.total", order.Total))
	s.logger.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"customer", order.CustomerName,
		"lines", len(order.Lines),
		"total", order.Total,
		"request_id", requestctx.RequestID(ctx),
	)
	return order, nil
}

// appendOrder stamps and stores a new order under s.mu. A non-empty cacheKey
// is checked again and recorded while the lock is held, so concurrent
// requests with the same key create a single order.
func (s *OrderService) appendOrder(ctx context.Context, cacheKey string, in entity.CreateOrderInput) (*entity.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cacheKey != "" {
		if prev := s.lookup(ctx, cacheKey); prev != nil {
			return prev, true, nil
		}
	}

	id, err := s.newID()
	if err != nil {
		return nil, false, fmt.Errorf("generate order id: %w", err)
	}
	order, err := entity.NewOrder(in, id, s.now())
	if err != nil {
		return nil, false, err
	}
	if err := s.orders.Append(ctx, order); err != nil {
		return nil, false, fmt.Errorf("append order %s: %w", order.ID, err)
	}

	if cacheKey != "" {
		s.remember(ctx, cacheKey, order)
	}
	return order, false, nil
}

// lookup returns the cached order for key. Cache failures degrade to a miss.
func (s *OrderService) lookup(ctx context.Context, key string) *entity.Order {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "idempotency cache unavailable", "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	var order entity.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable idempotency entry", "key", key, "error", err)
		return nil
	}
	return &order
}

func (s *OrderService) remember(ctx context.Context, key string, order *entity.Order) {
	b, err := json.Marshal(order)
	if err != nil {
		s.logger.WarnContext(ctx, "cannot encode order for idempotency cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(b), idempotencyTTL); err != nil {
		s.logger.WarnContext(ctx, "idempotency cache write failed", "order_id", order.ID, "error", err)
	}
}
