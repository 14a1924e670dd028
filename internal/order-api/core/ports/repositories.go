package ports

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// MenuRepository reads the Menu Store.
type MenuRepository interface {
	List(ctx context.Context) ([]entity.MenuItem, error)
}

// OrderRepository is an append-only Order Store. List returns orders in the
// order they were appended.
type OrderRepository interface {
	List(ctx context.Context) ([]entity.Order, error)
	Append(ctx context.Context, order *entity.Order) error
}
