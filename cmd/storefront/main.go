// Command storefront is a terminal client for the restaurant order API.
//
//	storefront menu  [-busca term] [-categoria cat]
//	storefront order -nome NAME [-obs NOTES] -item ID[:QTY] [-item ...]
//	storefront admin -user U -pass P
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/jcmexdev/restaurant-orders/internal/config"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/storefront"
	"github.com/jcmexdev/restaurant-orders/internal/storefront/apiclient"
)

const usage = `usage:
  storefront menu  [-busca term] [-categoria cat]
  storefront order -nome NAME [-obs NOTES] -item ID[:QTY] [-item ...]
  storefront admin -user U -pass P`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := apiclient.New(config.APIURL())
	os.Exit(run(ctx, client, os.Args[1:], os.Stdout, os.Stderr))
}

// api is the part of the order API the CLI needs.
type api interface {
	storefront.OrderCreator
	ListMenu(ctx context.Context) ([]entity.MenuItem, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
}

func run(ctx context.Context, client api, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "menu":
		err = runMenu(ctx, client, args[1:], stdout)
	case "order":
		err = runOrder(ctx, client, args[1:], stdout)
	case "admin":
		err = runAdmin(ctx, client, args[1:], stdout)
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, "Erro: "+errorMessage(err))
		return 1
	}
	return 0
}

func runMenu(ctx context.Context, client api, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	term := fs.String("busca", "", "filter by name")
	category := fs.String("categoria", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	menu, err := client.ListMenu(ctx)
	if err != nil {
		return err
	}
	items := storefront.FilterMenu(menu, *term, *category)

	fmt.Fprintf(out, "Categorias: %s\n\n", strings.Join(storefront.Categories(menu), ", "))
	if len(items) == 0 {
		fmt.Fprintln(out, "Nenhum item encontrado.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tCATEGORIA\tPRECO")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Name, it.Category, storefront.FormatBRL(it.Price))
	}
	return tw.Flush()
}

// itemFlag collects repeated -item ID[:QTY] values.
type itemFlag []itemArg

type itemArg struct {
	id  int64
	qty int
}

func (f *itemFlag) String() string { return fmt.Sprint(*f) }

func (f *itemFlag) Set(v string) error {
	idPart, qtyPart, hasQty := strings.Cut(v, ":")
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", idPart)
	}
	qty := 1
	if hasQty {
		if qty, err = strconv.Atoi(strings.TrimSpace(qtyPart)); err != nil {
			return fmt.Errorf("invalid quantity %q", qtyPart)
		}
	}
	*f = append(*f, itemArg{id: id, qty: qty})
	return nil
}

func runOrder(ctx context.Context, client api, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	name := fs.String("nome", "", "customer name")
	notes := fs.String("obs", "", "order notes")
	var items itemFlag
	fs.Var(&items, "item", "menu item as ID[:QTY], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	menu, err := client.ListMenu(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]entity.MenuItem, len(menu))
	for _, it := range menu {
		byID[it.ID] = it
	}

	cart := storefront.NewCart()
	for _, arg := range items {
		it, ok := byID[arg.id]
		if !ok {
			return fmt.Errorf("item %d não está no cardápio", arg.id)
		}
		cart.AddItem(it, arg.qty)
	}

	for _, l := range cart.Lines() {
		fmt.Fprintf(out, "%dx %s  %s\n", l.Quantity, l.Name, storefront.FormatBRL(l.Subtotal()))
	}
	if cart.Len() > 0 {
		fmt.Fprintf(out, "Total: %s\n", storefront.FormatBRL(cart.Total()))
	}

	order, err := storefront.NewCheckout(cart, client).Submit(ctx, *name, *notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Pedido enviado! #%s\n", order.ID)
	return nil
}

func runAdmin(ctx context.Context, client api, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	user := fs.String("user", "", "admin user")
	pass := fs.String("pass", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	wantUser, wantPass := adminCredentials()
	if !storefront.CredentialsMatch(*user, *pass, wantUser, wantPass) {
		return errors.New(storefront.MsgInvalidCredentials)
	}

	orders, err := client.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "Sem pedidos ainda.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATA\tCLIENTE\tITENS\tOBS\tTOTAL")
	for _, o := range storefront.NewestFirst(orders) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			storefront.FormatDateTime(o.CreatedAtTime()),
			o.CustomerName,
			storefront.ItemsSummary(o.Lines),
			storefront.OrDash(o.Notes),
			storefront.FormatBRL(o.Total),
		)
	}
	return tw.Flush()
}

func adminCredentials() (string, string) {
	user, pass := os.Getenv("ADMIN_USER"), os.Getenv("ADMIN_PASSWORD")
	if user == "" {
		user = "admin"
	}
	if pass == "" {
		pass = "admin"
	}
	return user, pass
}

// errorMessage maps errors to the text shown after "Erro: ".
func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, storefront.ErrMissingCustomer), errors.Is(err, storefront.ErrEmptyCart):
		return storefront.MsgFillForm
	case errors.Is(err, storefront.ErrSubmitInFlight):
		return "Enviando..."
	default:
		return err.Error()
	}
}
