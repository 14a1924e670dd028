// Package storefront holds the customer-side logic of the restaurant:
// the cart, menu filtering, order submission and display formatting.
package storefront

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// Line is one menu item in the cart with a denormalized name and price.
type Line struct {
	ID       int64
	Name     string
	Price    float64
	Quantity int
}

func (l Line) Subtotal() float64 {
	return entity.Subtotal(l.Price, l.Quantity).InexactFloat64()
}

// Cart maps item ids to lines. AddItem is its only mutator besides Clear,
// so a line with quantity zero never stays in the cart.
type Cart struct {
	mu      sync.Mutex
	lines   map[int64]Line
	version uint64
}

func NewCart() *Cart {
	return &Cart{lines: make(map[int64]Line)}
}

// AddItem changes the quantity of item by delta, clamping at zero, and
// returns the resulting quantity. Reaching zero removes the line.
func (c *Cart) AddItem(item entity.MenuItem, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[item.ID]
	if !ok {
		line = Line{ID: item.ID, Name: item.Name, Price: item.Price}
	}
	line.Quantity = max(0, line.Quantity+delta)
	if ok || line.Quantity > 0 {
		c.version++
	}

	if line.Quantity == 0 {
		delete(c.lines, item.ID)
		return 0
	}
	c.lines[item.ID] = line
	return line.Quantity
}

func (c *Cart) Quantity(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines[id].Quantity
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a snapshot ordered by item id.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(entity.Subtotal(l.Price, l.Quantity))
	}
	return total.InexactFloat64()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.lines)
	c.version++
}

// Version changes whenever the cart contents change.
func (c *Cart) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// OrderLines converts the cart into submission lines.
func (c *Cart) OrderLines() []entity.CreateOrderLine {
	lines := c.Lines()
	out := make([]entity.CreateOrderLine, len(lines))
	for i, l := range lines {
		out[i] = entity.CreateOrderLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: float64(l.Quantity),
		}
	}
	return out
}
