package entity

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNewOrderComputesTotals(t *testing.T) {
	now := time.Date(2025, 3, 1, 18, 4, 5, 123_000_000, time.UTC)
	in := CreateOrderInput{
		CustomerName: "  Ana ",
		Lines: []CreateOrderLine{
			{ID: 1, Name: "Pizza", Price: 30, Quantity: 2},
			{ID: 2, Name: "Suco", Price: 0.1, Quantity: 3},
		},
	}

	o, err := NewOrder(in, "abc", now)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if o.CustomerName != "Ana" {
		t.Errorf("CustomerName = %q, want %q", o.CustomerName, "Ana")
	}
	if o.CreatedAt != "2025-03-01T18:04:05.123Z" {
		t.Errorf("CreatedAt = %q", o.CreatedAt)
	}
	if o.Lines[0].Subtotal != 60 {
		t.Errorf("subtotal[0] = %v, want 60", o.Lines[0].Subtotal)
	}
	if o.Lines[1].Subtotal != 0.3 {
		t.Errorf("subtotal[1] = %v, want 0.3", o.Lines[1].Subtotal)
	}
	if o.Total != 60.3 {
		t.Errorf("Total = %v, want 60.3", o.Total)
	}
	if o.Notes != "" {
		t.Errorf("Notes = %q, want empty", o.Notes)
	}
	if !o.CreatedAtTime().Equal(now) {
		t.Errorf("CreatedAtTime = %v, want %v", o.CreatedAtTime(), now)
	}
}

func TestValidate(t *testing.T) {
	pizza := CreateOrderLine{ID: 1, Name: "Pizza", Price: 30, Quantity: 1}

	tests := []struct {
		name string
		in   CreateOrderInput
		ok   bool
	}{
		{"valid", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{pizza}}, true},
		{"free item", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "Agua", Price: 0, Quantity: 1}}}, true},
		{"empty name", CreateOrderInput{CustomerName: "", Lines: []CreateOrderLine{pizza}}, false},
		{"blank name", CreateOrderInput{CustomerName: " \t ", Lines: []CreateOrderLine{pizza}}, false},
		{"no lines", CreateOrderInput{CustomerName: "Ana"}, false},
		{"line without name", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Price: 1, Quantity: 1}}}, false},
		{"nan price", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: math.NaN(), Quantity: 1}}}, false},
		{"negative price", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: -1, Quantity: 1}}}, false},
		{"zero quantity", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: 0}}}, false},
		{"fractional quantity", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: 1.5}}}, false},
		{"infinite quantity", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: math.Inf(1)}}}, false},
		{"quantity past int range", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: 1e19}}}, false},
		{"quantity above max", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: MaxQuantity + 1}}}, false},
		{"quantity at max", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1, Quantity: MaxQuantity}}}, true},
		{"price above max", CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{{ID: 1, Name: "X", Price: 1e308, Quantity: 10}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Validate() = %v, want ErrInvalidInput", err)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Message == "" {
					t.Errorf("expected a ValidationError with a message, got %v", err)
				}
			}
		})
	}
}

func TestNewOrderRejectsInvalidInput(t *testing.T) {
	_, err := NewOrder(CreateOrderInput{CustomerName: "Ana"}, "id", time.Now())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if err.Error() != MsgMissingFields {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCreatedAtTimeMalformed(t *testing.T) {
	if got := (Order{CreatedAt: "yesterday"}).CreatedAtTime(); !got.IsZero() {
		t.Errorf("CreatedAtTime = %v, want zero", got)
	}
}

func TestNewOrderLargestLinesStayPositive(t *testing.T) {
	line := CreateOrderLine{ID: 1, Name: "X", Price: MaxPrice, Quantity: MaxQuantity}
	order, err := NewOrder(CreateOrderInput{CustomerName: "Ana", Lines: []CreateOrderLine{line, line}}, "id", time.Now())
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if order.Lines[0].Quantity != MaxQuantity || order.Total <= 0 || math.IsInf(order.Total, 0) {
		t.Errorf("order = %+v", order)
	}
}
