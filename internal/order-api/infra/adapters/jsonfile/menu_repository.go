package jsonfile

import (
	"context"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"
)

var _ ports.MenuRepository = (*MenuRepository)(nil)

// MenuRepository reads the menu file on every call; nothing is cached.
type MenuRepository struct {
	path string
}

func NewMenuRepository(path string) *MenuRepository {
	return &MenuRepository{path: path}
}

func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	return readArray[entity.MenuItem](r.path)
}
