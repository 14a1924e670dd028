package storefront

import (
	"testing"
	"time"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{6.5, "R$ 6,50"},
		{35.9, "R$ 35,90"},
		{1234.5, "R$ 1.234,50"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemsSummary(t *testing.T) {
	lines := []entity.OrderLine{
		{Name: "Pizza", Quantity: 2},
		{Name: "Suco", Quantity: 1},
	}
	if got := ItemsSummary(lines); got != "2x Pizza, 1x Suco" {
		t.Errorf("ItemsSummary = %q", got)
	}
	if got := ItemsSummary(nil); got != "" {
		t.Errorf("ItemsSummary(nil) = %q", got)
	}
}

func TestOrDash(t *testing.T) {
	for in, want := range map[string]string{"": "-", "  ": "-", "sem cebola": "sem cebola"} {
		if got := OrDash(in); got != want {
			t.Errorf("OrDash(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, 3, 1, 18, 4, 5, 0, time.UTC)
	if got, want := FormatDateTime(ts), ts.Local().Format("02/01/2006 15:04:05"); got != want {
		t.Errorf("FormatDateTime = %q, want %q", got, want)
	}
	if got := FormatDateTime(time.Time{}); got != "-" {
		t.Errorf("zero time = %q", got)
	}
}

func TestNewestFirst(t *testing.T) {
	orders := []entity.Order{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := NewestFirst(orders)
	if got[0].ID != "c" || got[2].ID != "a" || orders[0].ID != "a" {
		t.Errorf("NewestFirst = %+v, input = %+v", got, orders)
	}
}

func TestCredentialsMatch(t *testing.T) {
	if !CredentialsMatch("admin", "admin", "admin", "admin") {
		t.Error("matching credentials rejected")
	}
	if CredentialsMatch("admin", "x", "admin", "admin") || CredentialsMatch("", "", "admin", "admin") {
		t.Error("wrong credentials accepted")
	}
}
