package storefront

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// MsgFillForm is shown when the name or the cart is missing.
const MsgFillForm = "Preencha o nome e adicione itens."

var (
	ErrSubmitInFlight  = errors.New("storefront: an order is already being submitted")
	ErrMissingCustomer = errors.New("storefront: customer name is required")
	ErrEmptyCart       = errors.New("storefront: cart is empty")
)

// OrderCreator submits an order to the backend. Requests carrying the same
// idempotency key create at most one order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, idempotencyKey string, in entity.CreateOrderInput) (*entity.Order, error)
}

// Checkout submits the contents of a cart. At most one submission runs at
// a time; a concurrent Submit fails fast with ErrSubmitInFlight.
//
// Retrying an unchanged cart and form after a failure reuses the idempotency
// key of the failed attempt, so an order the server stored before the connection
// dropped is returned instead of duplicated.
type Checkout struct {
	cart     *Cart
	api      OrderCreator
	newKey   func() string
	inFlight atomic.Bool

	// guarded by inFlight
	key        string
	keyVersion uint64
	keyForm    string
}

func NewCheckout(cart *Cart, api OrderCreator) *Checkout {
	return &Checkout{cart: cart, api: api, newKey: uuid.NewString}
}

func (c *Checkout) InFlight() bool { return c.inFlight.Load() }

// Submit sends the cart as an order. On success the cart is cleared; on
// failure it is left as it was and the backend error is returned unchanged.
func (c *Checkout) Submit(ctx context.Context, customerName, notes string) (*entity.Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrMissingCustomer
	}
	if c.cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	notes = strings.TrimSpace(notes)
	version, form := c.cart.Version(), customerName+"\x00"+notes
	if c.key == "" || c.keyVersion != version || c.keyForm != form {
		c.key, c.keyVersion, c.keyForm = c.newKey(), version, form
	}

	order, err := c.api.CreateOrder(ctx, c.key, entity.CreateOrderInput{
		CustomerName: customerName,
		Notes:        notes,
		Lines:        c.cart.OrderLines(),
	})
	if err != nil {
		return nil, err
	}

	c.cart.Clear()
	c.key = ""
	return order, nil
}
