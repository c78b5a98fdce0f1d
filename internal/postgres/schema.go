package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied by `api -migrate`. Statements are idempotent so the flag
// is safe to leave on in compose setups.
//
// order_lines.product_id is nullable ON DELETE SET NULL: a line must survive
// deletion of its product, it only loses the catalog reference.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	id             BIGSERIAL PRIMARY KEY,
	name           TEXT NOT NULL,
	price          BIGINT,
	discount_price BIGINT,
	original_price BIGINT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS product_images (
	id         BIGSERIAL PRIMARY KEY,
	product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	url        TEXT NOT NULL,
	is_main    BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS orders (
	id            BIGSERIAL PRIMARY KEY,
	code          TEXT NOT NULL UNIQUE,
	customer_name TEXT NOT NULL,
	phone         TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	address       TEXT NOT NULL,
	post_code     TEXT NOT NULL DEFAULT '',
	note          TEXT NOT NULL DEFAULT '',
	language      TEXT NOT NULL DEFAULT 'vi',
	create_date   TIMESTAMPTZ NOT NULL,
	update_date   TIMESTAMPTZ NOT NULL,
	status        INT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_orders_create_date ON orders (create_date DESC, id DESC);

CREATE TABLE IF NOT EXISTS order_lines (
	id         BIGSERIAL PRIMARY KEY,
	order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
	unit_price BIGINT NOT NULL,
	quantity   INT NOT NULL,
	discount   DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_order_lines_order ON order_lines (order_id);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
