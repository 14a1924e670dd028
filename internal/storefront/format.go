package storefront

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders v as Brazilian reais, e.g. "R$ 1.234,50".
func FormatBRL(v float64) string {
	return brPrinter.Sprintf("R$ %.2f", v)
}

// FormatDateTime renders t in the local zone as dd/mm/yyyy hh:mm:ss.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04:05")
}

// ItemsSummary renders lines as "2x Pizza, 1x Suco".
func ItemsSummary(lines []entity.OrderLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l.Quantity) + "x " + l.Name
	}
	return strings.Join(parts, ", ")
}

// OrDash returns "-" for blank strings.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// NewestFirst returns a reversed copy of orders, which the store keeps oldest first.
func NewestFirst(orders []entity.Order) []entity.Order {
	out := make([]entity.Order, len(orders))
	for i, o := range orders {
		out[len(orders)-1-i] = o
	}
	return out
}
