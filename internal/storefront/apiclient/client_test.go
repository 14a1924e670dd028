package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/pkg/requestctx"
)

func TestListMenu(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cardapio" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"nome":"Pizza","categoria":"Pizzas","preco":30}]`))
	}))
	defer srv.Close()

	items, err := New(srv.URL + "/").ListMenu(t.Context())
	if err != nil {
		t.Fatalf("ListMenu: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Pizza" || items[0].Price != 30 {
		t.Errorf("items = %+v", items)
	}
}

func TestCreateOrder(t *testing.T) {
	var got createOrderRequest
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get(requestctx.HeaderXIdempotencyKey)
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"message":"Pedido recebido com sucesso!","pedido":{"id":"abc","nomeCliente":"Ana","total":60}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithKeyGenerator(func() string { return "generated" }))
	order, err := c.CreateOrder(t.Context(), "key-1", entity.CreateOrderInput{
		CustomerName: "Ana",
		Lines:        []entity.CreateOrderLine{{ID: 1, Name: "Pizza", Price: 30, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "abc" || order.Total != 60 {
		t.Errorf("order = %+v", order)
	}
	if key != "key-1" {
		t.Errorf("idempotency key = %q", key)
	}
	if got.CustomerName != "Ana" || len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Errorf("request = %+v", got)
	}
}

func TestCreateOrderGeneratesKeyWhenEmpty(t *testing.T) {
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get(requestctx.HeaderXIdempotencyKey)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true,"message":"ok","pedido":{"id":"abc"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithKeyGenerator(func() string { return "generated" }))
	if _, err := c.CreateOrder(t.Context(), "", entity.CreateOrderInput{CustomerName: "Ana"}); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if key != "generated" {
		t.Errorf("idempotency key = %q, want generated", key)
	}
}

func TestCreateOrderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"server message", http.StatusBadRequest, `{"ok":false,"message":"Dados inválidos: informe nomeCliente e itens."}`, "Dados inválidos: informe nomeCliente e itens."},
		{"no body", http.StatusInternalServerError, ``, MsgSubmitFailed},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, MsgSubmitFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).CreateOrder(t.Context(), "", entity.CreateOrderInput{CustomerName: "Ana"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.status || apiErr.Message != tt.message {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}
