package httpx

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

// CreateOrderRequest keeps itens and the numeric line fields raw so that
// strings like "30" are accepted and malformed values become a 400 with a
// precise message instead of a decode failure.
type CreateOrderRequest struct {
	CustomerName string          `json:"nomeCliente"`
	Notes        string          `json:"observacoes"`
	Items        json.RawMessage `json:"itens"`
}

type CreateOrderItemDTO struct {
	ID       json.RawMessage `json:"id"`
	Name     string          `json:"nome"`
	Price    json.RawMessage `json:"preco"`
	Quantity json.RawMessage `json:"quantidade"`
}

type CreateOrderResponse struct {
	OK      bool          `json:"ok"`
	Message string        `json:"message"`
	Order   *entity.Order `json:"pedido,omitempty"`
}

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Alive bool `json:"alive"`
}

// toInput coerces the request into domain input. Numeric problems are left
// as NaN for the domain validation to report with the line position.
func (req CreateOrderRequest) toInput() (entity.CreateOrderInput, error) {
	in := entity.CreateOrderInput{
		CustomerName: req.CustomerName,
		Notes:        req.Notes,
	}

	raw := bytes.TrimSpace(req.Items)
	if strings.TrimSpace(req.CustomerName) == "" || len(raw) == 0 || raw[0] != '[' {
		return in, entity.Invalid(entity.MsgMissingFields)
	}

	var items []CreateOrderItemDTO
	if err := json.Unmarshal(raw, &items); err != nil {
		return in, entity.Invalid("Dados inválidos: itens malformados.")
	}

	in.Lines = make([]entity.CreateOrderLine, 0, len(items))
	for i, it := range items {
		id := parseNumber(it.ID)
		if math.IsNaN(id) || id != math.Trunc(id) || id < 0 || id >= math.MaxInt64 {
			return in, entity.Invalid("Dados inválidos: item %d sem id.", i+1)
		}
		in.Lines = append(in.Lines, entity.CreateOrderLine{
			ID:       int64(id),
			Name:     it.Name,
			Price:    parseNumber(it.Price),
			Quantity: parseNumber(it.Quantity),
		})
	}
	return in, nil
}

// parseNumber accepts a JSON number or a string holding one. Anything else,
// including null and absent values, yields NaN.
func parseNumber(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return math.NaN()
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return math.NaN()
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return math.NaN()
	}
	return f
}
