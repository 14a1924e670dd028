package httpx

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
)

const (
	msgOrderCreated = "Pedido recebido com sucesso!"
	msgInvalidJSON  = "Dados inválidos: JSON malformado."
	msgSaveFailed   = "Não foi possível salvar o pedido."

	maxBodyBytes = 1 << 20
)

// Handler serves the JSON API and the HTML pages of the restaurant.
type Handler struct {
	orderService ports.OrderService
	pages        *template.Template
}

func NewHandler(os ports.OrderService) *Handler {
	return &Handler{
		orderService: os,
		pages:        parsePages(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Alive: true})
}

// ListMenu returns the menu in file order. It never fails: an unreadable
// menu is served as an empty list.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orderService.ListMenu(r.Context()))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.orderService.ListOrders(r.Context()))
}

// CreateOrder validates and persists an order submitted by the storefront.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	// An empty body is treated like an empty object so the caller gets the
	// missing fields message.
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	order, err := h.orderService.CreateOrder(ctx, requestctx.IdempotencyKey(ctx), input)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Message)
			return
		}
		slog.ErrorContext(ctx, "create order failed",
			"request_id", requestctx.RequestID(ctx),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}

	writeJSON(w, http.StatusCreated, CreateOrderResponse{
		OK:      true,
		Message: msgOrderCreated,
		Order:   order,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		OK:      false,
		Message: msg,
	})
}
