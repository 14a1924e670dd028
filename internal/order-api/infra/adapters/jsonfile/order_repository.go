package jsonfile

import (
	"context"
	"sync"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository keeps every order in one JSON array. Appends are a
// read-modify-write of the whole file, serialized by mu.
type OrderRepository struct {
	mu   sync.RWMutex
	path string
}

func NewOrderRepository(path string) *OrderRepository {
	return &OrderRepository{path: path}
}

func (r *OrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return readArray[entity.Order](r.path)
}

// Append adds order at the end of the file. A file that exists but cannot be
// decoded is left untouched and the error is returned.
func (r *OrderRepository) Append(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := readArray[entity.Order](r.path)
	if err != nil {
		return err
	}
	orders = append(orders, *order)
	return writeArray(r.path, orders)
}
