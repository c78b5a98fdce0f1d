package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Lookup is the read-only catalog boundary the cart depends on.
type Lookup interface {
	GetProduct(ctx context.Context, id int64) (Product, error)
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) GetProduct(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, price, discount_price, original_price
		FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.DiscountPrice, &p.OriginalPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT url, is_main FROM product_images
		WHERE product_id = $1 ORDER BY id`, id)
	if err != nil {
		return Product{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var im Image
		if err := rows.Scan(&im.URL, &im.IsMain); err != nil {
			return Product{}, err
		}
		p.Images = append(p.Images, im)
	}
	return p, rows.Err()
}
