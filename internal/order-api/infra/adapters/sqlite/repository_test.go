package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
)

func openTemp(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "pedidos.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAppendAndList(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	first := &entity.Order{
		ID:           "0190a1b2-0000-7000-8000-000000000001",
		CreatedAt:    "2025-03-01T18:04:05.123Z",
		CustomerName: "Ana",
		Notes:        "sem cebola",
		Lines: []entity.OrderLine{
			{ID: 1, Name: "Pizza", Price: 30, Quantity: 2, Subtotal: 60},
			{ID: 3, Name: "Suco", Price: 7.5, Quantity: 1, Subtotal: 7.5},
		},
		Total: 67.5,
	}
	second := &entity.Order{
		ID:           "0190a1b2-0000-7000-8000-000000000002",
		CreatedAt:    "2025-03-01T18:05:00.000Z",
		CustomerName: "Bruno",
		Lines:        []entity.OrderLine{{ID: 2, Name: "Lasanha", Price: 35, Quantity: 1, Subtotal: 35}},
		Total:        35,
	}

	for _, o := range []*entity.Order{first, second} {
		if err := repo.Append(ctx, o); err != nil {
			t.Fatalf("Append(%s): %v", o.ID, err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []entity.Order{*first, *second}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List =\n%+v\nwant\n%+v", got, want)
	}
}

func TestListEmpty(t *testing.T) {
	got, err := openTemp(t).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List = %#v, want empty slice", got)
	}
}

func TestAppendDuplicateIDRollsBack(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	o := &entity.Order{ID: "dup", CreatedAt: "2025-03-01T18:04:05.123Z", CustomerName: "Ana",
		Lines: []entity.OrderLine{{ID: 1, Name: "Pizza", Price: 30, Quantity: 1, Subtotal: 30}}, Total: 30}

	if err := repo.Append(ctx, o); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, o); err == nil {
		t.Fatal("expected duplicate id to fail")
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || len(got[0].Lines) != 1 {
		t.Errorf("List = %+v, want one order with one line", got)
	}
}
