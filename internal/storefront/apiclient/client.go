// Package apiclient talks to the order API over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
	"github.com/jcmexdev/restaurant-orders/internal/storefront"
)

// MsgSubmitFailed is used when the server rejects an order without a message.
const MsgSubmitFailed = "Falha ao enviar."

var _ storefront.OrderCreator = (*Client)(nil)

// APIError is a non-2xx answer. Message is the server's own text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL    string
	httpClient *http.Client
	newKey     func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithKeyGenerator replaces the generator used when CreateOrder gets no key.
func WithKeyGenerator(gen func() string) Option {
	return func(c *Client) { c.newKey = gen }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		newKey: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListMenu(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	if err := c.get(ctx, "/cardapio", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.get(ctx, "/pedidos", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type createOrderRequest struct {
	CustomerName string            `json:"nomeCliente"`
	Notes        string            `json:"observacoes"`
	Items        []createOrderItem `json:"itens"`
}

type createOrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"nome"`
	Price    float64 `json:"preco"`
	Quantity float64 `json:"quantidade"`
}

type createOrderResponse struct {
	OK      bool          `json:"ok"`
	Message string        `json:"message"`
	Order   *entity.Order `json:"pedido"`
}

// CreateOrder posts a new order with idempotencyKey, or a fresh key when it
// is empty.
func (c *Client) CreateOrder(ctx context.Context, idempotencyKey string, in entity.CreateOrderInput) (*entity.Order, error) {
	if idempotencyKey == "" {
		idempotencyKey = c.newKey()
	}

	req := createOrderRequest{
		CustomerName: in.CustomerName,
		Notes:        in.Notes,
		Items:        make([]createOrderItem, len(in.Lines)),
	}
	for i, l := range in.Lines {
		req.Items[i] = createOrderItem{ID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: encode order: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pedidos", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(requestctx.HeaderXIdempotencyKey, idempotencyKey)

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("apiclient: POST /pedidos: %w", err)
	}
	defer res.Body.Close()

	var out createOrderResponse
	decodeErr := json.NewDecoder(res.Body).Decode(&out)

	if res.StatusCode < 200 || res.StatusCode > 299 || !out.OK {
		msg := out.Message
		if decodeErr != nil || msg == "" {
			msg = MsgSubmitFailed
		}
		return nil, &APIError{StatusCode: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("apiclient: decode response: %w", decodeErr)
	}
	if out.Order == nil {
		return nil, errors.New("apiclient: response without pedido")
	}
	return out.Order, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: GET %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &APIError{StatusCode: res.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("apiclient: decode %s: %w", path, err)
	}
	return nil
}
