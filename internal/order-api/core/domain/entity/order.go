package entity

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout renders order timestamps as ISO-8601 UTC with millisecond
// precision, e.g. 2025-03-01T18:04:05.123Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MsgMissingFields is returned when the customer name or the item list is absent.
const MsgMissingFields = "Dados inválidos: informe nomeCliente e itens."

// Upper bounds for a single order line. They keep quantities inside int and
// every subtotal and total inside the float64 range.
const (
	MaxQuantity = math.MaxInt32
	MaxPrice    = 1e9
)

// ErrInvalidInput is the sentinel wrapped by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries a human readable reason for rejecting an order.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Order is an immutable, persisted customer order.
type Order struct {
	ID           string      `json:"id"`
	CreatedAt    string      `json:"dataISO"`
	CustomerName string      `json:"nomeCliente"`
	Notes        string      `json:"observacoes"`
	Lines        []OrderLine `json:"itens"`
	Total        float64     `json:"total"`
}

// OrderLine is a menu item denormalized into an order at submission time.
type OrderLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"nome"`
	Price    float64 `json:"preco"`
	Quantity int     `json:"quantidade"`
	Subtotal float64 `json:"subtotal"`
}

// CreatedAtTime parses CreatedAt. The zero time is returned for malformed values.
func (o Order) CreatedAtTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, o.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateOrderInput is the already-coerced payload of an order submission.
type CreateOrderInput struct {
	CustomerName string
	Notes        string
	Lines        []CreateOrderLine
}

// CreateOrderLine holds numeric values as coerced from the request; Quantity
// stays a float so fractional values can be rejected explicitly.
type CreateOrderLine struct {
	ID       int64
	Name     string
	Price    float64
	Quantity float64
}

// Validate reports the first problem found in the input as a ValidationError.
func (in CreateOrderInput) Validate() error {
	if strings.TrimSpace(in.CustomerName) == "" || len(in.Lines) == 0 {
		return Invalid(MsgMissingFields)
	}
	for i, l := range in.Lines {
		pos := i + 1
		if strings.TrimSpace(l.Name) == "" {
			return Invalid("Dados inválidos: item %d sem nome.", pos)
		}
		if math.IsNaN(l.Price) || math.IsInf(l.Price, 0) || l.Price < 0 || l.Price > MaxPrice {
			return Invalid("Dados inválidos: item %d com preco inválido.", pos)
		}
		if math.IsNaN(l.Quantity) || math.IsInf(l.Quantity, 0) || l.Quantity <= 0 || l.Quantity > MaxQuantity ||
			l.Quantity != math.Trunc(l.Quantity) {
			return Invalid("Dados inválidos: item %d com quantidade inválida.", pos)
		}
	}
	return nil
}

// NewOrder validates in and builds the order with the given identity.
// Subtotals and the total are summed in exact decimal arithmetic.
func NewOrder(in CreateOrderInput, id string, createdAt time.Time) (*Order, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	lines := make([]OrderLine, 0, len(in.Lines))
	total := decimal.Zero
	for _, l := range in.Lines {
		qty := int(l.Quantity)
		sub := Subtotal(l.Price, qty)
		total = total.Add(sub)
		lines = append(lines, OrderLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: qty,
			Subtotal: sub.InexactFloat64(),
		})
	}

	totalFloat := total.InexactFloat64()
	if math.IsInf(totalFloat, 0) {
		return nil, Invalid("Dados inválidos: total do pedido fora do limite.")
	}

	return &Order{
		ID:           id,
		CreatedAt:    createdAt.UTC().Format(TimestampLayout),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Notes:        in.Notes,
		Lines:        lines,
		Total:        totalFloat,
	}, nil
}

// Subtotal returns price × quantity without binary floating point drift.
func Subtotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
