// Package sqlite provides a SQLite-backed Order Store, the transactional
// alternative to the flat JSON file.
//
// WAL mode is enabled on Open so listing orders never blocks a submission.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/domain/entity"
	"github.com/jcmexdev/restaurant-orders/internal/order-api/core/ports"

	// Pure-Go driver, no CGO needed.
	_ "modernc.org/sqlite"
)

// schema is applied once on startup. Both tables are append-only; seq keeps
// the insertion order that List returns.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    seq             INTEGER PRIMARY KEY AUTOINCREMENT,
    id              TEXT    NOT NULL UNIQUE,
    created_at      TEXT    NOT NULL,
    customer_name   TEXT    NOT NULL,
    notes           TEXT    NOT NULL DEFAULT '',
    total           REAL    NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
    order_id        TEXT    NOT NULL REFERENCES orders(id),
    position        INTEGER NOT NULL,
    item_id         INTEGER NOT NULL,
    name            TEXT    NOT NULL,
    price           REAL    NOT NULL,
    quantity        INTEGER NOT NULL,
    subtotal        REAL    NOT NULL,
    PRIMARY KEY (order_id, position)
);
`

var _ ports.OrderRepository = (*Repository)(nil)

type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/pedidos.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// One writer connection; appends are serialized by SQLite itself.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Append stores the order and its lines in one transaction.
func (r *Repository) Append(ctx context.Context, order *entity.Order) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin append %q: %w", order.ID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, created_at, customer_name, notes, total)
		VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.CreatedAt, order.CustomerName, order.Notes, order.Total,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order %q: %w", order.ID, err)
	}

	for i, l := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, position, item_id, name, price, quantity, subtotal)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			order.ID, i, l.ID, l.Name, l.Price, l.Quantity, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("sqlite: insert line %d of %q: %w", i, order.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit order %q: %w", order.ID, err)
	}
	return nil
}

// List returns every order, oldest first, with its lines in submission order.
func (r *Repository) List(ctx context.Context) ([]entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, customer_name, notes, total
		FROM   orders
		ORDER  BY seq`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	orders := []entity.Order{}
	index := make(map[string]int)
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.CustomerName, &o.Notes, &o.Total); err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		o.Lines = []entity.OrderLine{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate orders: %w", err)
	}

	if err := r.attachLines(ctx, orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) attachLines(ctx context.Context, orders []entity.Order, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, item_id, name, price, quantity, subtotal
		FROM   order_lines
		ORDER  BY order_id, position`)
	if err != nil {
		return fmt.Errorf("sqlite: list lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var l entity.OrderLine
		if err := rows.Scan(&orderID, &l.ID, &l.Name, &l.Price, &l.Quantity, &l.Subtotal); err != nil {
			return fmt.Errorf("sqlite: scan line: %w", err)
		}
		i, ok := index[orderID]
		if !ok {
			continue
		}
		orders[i].Lines = append(orders[i].Lines, l)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterate lines: %w", err)
	}
	return nil
}

// applySchema is idempotent thanks to IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
