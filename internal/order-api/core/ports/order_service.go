package ports

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// OrderService is the application boundary used by the HTTP layer.
type OrderService interface {
	ListMenu(ctx context.Context) []entity.MenuItem
	ListOrders(ctx context.Context) []entity.Order
	CreateOrder(ctx context.Context, idempotencyKey string, in entity.CreateOrderInput) (*entity.Order, error)
}
