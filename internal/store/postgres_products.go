package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
)

func (s *Postgres) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, name, price, description, image, category
	          FROM products ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, readErr("list products", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Category); err != nil {
			return nil, readErr("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("iterate products", err)
	}

	return products, nil
}

func (s *Postgres) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT id, name, price, description, image, category
	          FROM products WHERE id = $1`

	var p domain.Product
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, readErr("get product", err)
	}

	return &p, nil
}

func (s *Postgres) InsertProduct(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, price, description, image, category)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`

	err := s.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Description, p.Image, p.Category).
		Scan(&p.ID)
	if err != nil {
		return writeErr("insert product", err)
	}

	s.publish(ctx, TableProducts, notify.OpInsert, strconv.FormatInt(p.ID, 10))
	return nil
}

func (s *Postgres) UpdateProduct(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name = $1, price = $2, description = $3, image = $4, category = $5
	          WHERE id = $6`

	result, err := s.db.ExecContext(ctx, query, p.Name, p.Price, p.Description, p.Image, p.Category, p.ID)
	if err != nil {
		return writeErr("update product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}

	s.publish(ctx, TableProducts, notify.OpUpdate, strconv.FormatInt(p.ID, 10))
	return nil
}

func (s *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete product", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrProductNotFound
	}

	s.publish(ctx, TableProducts, notify.OpDelete, strconv.FormatInt(id, 10))
	return nil
}

func (s *Postgres) DeleteBasketByProduct(ctx context.Context, productID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM basket WHERE product_id = $1`, productID)
	if err != nil {
		return writeErr(fmt.Sprintf("delete basket entries for product %d", productID), err)
	}

	if affected, _ := result.RowsAffected(); affected > 0 {
		s.publish(ctx, TableBasket, notify.OpDelete, "")
	}
	return nil
}
