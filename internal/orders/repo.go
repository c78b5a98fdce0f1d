package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id, code, customer_name, phone, email, address, post_code, note, language, create_date, update_date, status`

func scanOrder(row pgx.Row, o *Order) error {
	var status int
	err := row.Scan(&o.ID, &o.Code, &o.CustomerName, &o.Phone, &o.Email, &o.Address,
		&o.PostCode, &o.Note, &o.Language, &o.CreateDate, &o.UpdateDate, &status)
	o.Status = Status(status)
	return err
}

// CreateOrderTx persists the header and its lines in one transaction: the
// header insert yields the id the lines reference, and either everything
// commits or nothing is visible. The product reference on each line is
// resolved best-effort via a subselect, so a product deleted since the cart
// was filled leaves a line with a NULL product_id rather than failing the
// checkout.
func (r *Repo) CreateOrderTx(ctx context.Context, o *Order, lines []OrderLine) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (code, customer_name, phone, email, address, post_code, note, language, create_date, update_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		o.Code, o.CustomerName, o.Phone, o.Email, o.Address, o.PostCode, o.Note,
		o.Language, o.CreateDate, o.UpdateDate, int(o.Status),
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = o.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO order_lines (order_id, product_id, unit_price, quantity, discount)
			VALUES ($1, (SELECT id FROM products WHERE id = $2), $3, $4, $5)`,
			o.ID, lines[i].ProductID, lines[i].UnitPrice, lines[i].Quantity, lines[i].Discount,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Search returns one page of matching orders, newest first, plus the total
// match count before pagination.
func (r *Repo) Search(ctx context.Context, q ListQuery) ([]Order, int, error) {
	where, args := buildSearchFilter(q)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY create_date DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, sql, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

// buildSearchFilter turns a normalized query into a WHERE clause and its
// positional args. Keyword matches case-insensitively over the fields an
// admin actually searches by: code, customer name, phone, email.
func buildSearchFilter(q ListQuery) (string, []any) {
	var conds []string
	var args []any

	if q.Keyword != "" {
		args = append(args, "%"+q.Keyword+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(code ILIKE $%d OR customer_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", n, n, n, n))
	}
	if q.Status != nil {
		args = append(args, int(*q.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.DateFrom != nil {
		args = append(args, *q.DateFrom)
		conds = append(conds, fmt.Sprintf("create_date >= $%d", len(args)))
	}
	if q.DateTo != nil {
		args = append(args, *q.DateTo)
		conds = append(conds, fmt.Sprintf("create_date < $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// LineTotals sums unit_price*quantity per order in one grouped query.
// Orders without lines are simply absent from the result map.
func (r *Repo) LineTotals(ctx context.Context, orderIDs []int64) (map[int64]int64, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, SUM(unit_price * quantity)
		FROM order_lines
		WHERE order_id = ANY($1)
		GROUP BY order_id`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int64, len(orderIDs))
	for rows.Next() {
		var id, sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, err
		}
		totals[id] = sum
	}
	return totals, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// Lines loads an order's lines with their product names. The LEFT JOIN keeps
// lines whose product is gone; they come back with a zero product id and an
// empty name.
func (r *Repo) Lines(ctx context.Context, orderID int64) ([]DetailLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT COALESCE(l.product_id, 0), COALESCE(p.name, ''), l.unit_price, l.quantity, l.discount
		FROM order_lines l
		LEFT JOIN products p ON p.id = l.product_id
		WHERE l.order_id = $1
		ORDER BY l.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DetailLine
	for rows.Next() {
		var l DetailLine
		if err := rows.Scan(&l.ProductID, &l.ProductName, &l.UnitPrice, &l.Quantity, &l.Discount); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, id int64, s Status, at time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE orders SET status = $2, update_date = $3 WHERE id = $1`, id, int(s), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// Delete removes the order and its lines. The lines go explicitly inside the
// same transaction; the FK cascade is only a backstop.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return tx.Commit(ctx)
}
