package storefront

import (
	"sort"
	"strings"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// FilterMenu keeps items whose name contains term (case-insensitive) and
// whose category equals category. An empty term or category matches all.
func FilterMenu(items []entity.MenuItem, term, category string) []entity.MenuItem {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]entity.MenuItem, 0, len(items))
	for _, it := range items {
		if category != "" && it.Category != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(it.Name), term) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories returns the distinct categories of items, sorted.
func Categories(items []entity.MenuItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := []string{}
	for _, it := range items {
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}
