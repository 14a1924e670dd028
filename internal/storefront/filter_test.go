package storefront

import (
	"reflect"
	"testing"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

func TestFilterMenu(t *testing.T) {
	calabresa := entity.MenuItem{ID: 4, Name: "Pizza Calabresa", Category: "Pizzas", Price: 35}
	menu := []entity.MenuItem{pizza, suco, pudim, calabresa}

	tests := []struct {
		name     string
		term     string
		category string
		want     []int64
	}{
		{"no criteria", "", "", []int64{1, 2, 3, 4}},
		{"term only", "pizza", "", []int64{1, 4}},
		{"term is case-insensitive and trimmed", "  CALA ", "", []int64{4}},
		{"category only", "", "Bebidas", []int64{2}},
		{"term and category", "p", "Sobremesas", []int64{3}},
		{"category is exact", "", "bebidas", []int64{}},
		{"no match", "lasanha", "", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterMenu(menu, tt.term, tt.category)
			ids := make([]int64, len(got))
			for i, it := range got {
				ids[i] = it.ID
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("FilterMenu(%q, %q) = %v, want %v", tt.term, tt.category, ids, tt.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	got := Categories([]entity.MenuItem{pudim, pizza, suco, pizza})
	want := []string{"Bebidas", "Pizzas", "Sobremesas"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
	if got := Categories(nil); len(got) != 0 {
		t.Errorf("Categories(nil) = %v", got)
	}
}
