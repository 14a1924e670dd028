package httpx

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/storefront"
)

//go:embed templates/*.html
var templateFS embed.FS

func parsePages() *template.Template {
	funcs := template.FuncMap{
		"brl":      storefront.FormatBRL,
		"summary":  storefront.ItemsSummary,
		"orDash":   storefront.OrDash,
		"datetime": func(o entity.Order) string { return storefront.FormatDateTime(o.CreatedAtTime()) },
	}
	return template.Must(template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

type storefrontPage struct {
	Items      []entity.MenuItem
	Categories []string
	Term       string
	Category   string
}

type adminPage struct {
	Orders []entity.Order
}

// StorefrontPage renders the menu filtered by ?busca= and ?categoria=.
func (h *Handler) StorefrontPage(w http.ResponseWriter, r *http.Request) {
	menu := h.orderService.ListMenu(r.Context())
	term := r.URL.Query().Get("busca")
	category := r.URL.Query().Get("categoria")

	h.render(w, r, "storefront.html", storefrontPage{
		Items:      storefront.FilterMenu(menu, term, category),
		Categories: storefront.Categories(menu),
		Term:       term,
		Category:   category,
	})
}

// AdminPage renders every order, newest first.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	orders := h.orderService.ListOrders(r.Context())
	h.render(w, r, "admin.html", adminPage{Orders: storefront.NewestFirst(orders)})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "render page failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
