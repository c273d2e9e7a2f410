package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
)

func (s *Postgres) ListBasketLines(ctx context.Context, userID uuid.UUID) ([]domain.BasketLine, error) {
	query := `SELECT b.id, b.user_id, b.product_id, b.quantity, b.created_at,
	                 p.id, p.name, p.price, p.description, p.image, p.category
	          FROM basket b
	          JOIN products p ON p.id = b.product_id
	          WHERE b.user_id = $1
	          ORDER BY b.created_at, b.id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, readErr("list basket", err)
	}
	defer rows.Close()

	var lines []domain.BasketLine
	for rows.Next() {
		var l domain.BasketLine
		if err := rows.Scan(
			&l.Entry.ID,
			&l.Entry.UserID,
			&l.Entry.ProductID,
			&l.Entry.Quantity,
			&l.Entry.CreatedAt,
			&l.Product.ID,
			&l.Product.Name,
			&l.Product.Price,
			&l.Product.Description,
			&l.Product.Image,
			&l.Product.Category,
		); err != nil {
			return nil, readErr("scan basket line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, readErr("iterate basket", err)
	}

	return lines, nil
}

func (s *Postgres) UpsertBasketIncrement(ctx context.Context, userID uuid.UUID, productID int64, delta int) error {
	// Atomic increment on the server side: two concurrent adds for the
	// same line both land, neither overwrites the other.
	query := `INSERT INTO basket (id, user_id, product_id, quantity)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = basket.quantity + EXCLUDED.quantity
	          RETURNING id, (xmax = 0) AS inserted`

	var (
		entryID  uuid.UUID
		inserted bool
	)
	err := s.db.QueryRowContext(ctx, query, uuid.New(), userID, productID, delta).
		Scan(&entryID, &inserted)
	if err != nil {
		return writeErr(fmt.Sprintf("add product %d to basket", productID), err)
	}

	op := notify.OpUpdate
	if inserted {
		op = notify.OpInsert
	}
	s.publish(ctx, TableBasket, op, entryID.String())
	return nil
}

func (s *Postgres) SetBasketQuantity(ctx context.Context, entryID, userID uuid.UUID, quantity int) error {
	query := `UPDATE basket SET quantity = $1 WHERE id = $2 AND user_id = $3`

	result, err := s.db.ExecContext(ctx, query, quantity, entryID, userID)
	if err != nil {
		return writeErr("set basket quantity", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrEntryNotFound
	}

	s.publish(ctx, TableBasket, notify.OpUpdate, entryID.String())
	return nil
}

func (s *Postgres) DeleteBasketEntry(ctx context.Context, entryID, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM basket WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return writeErr("delete basket entry", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrEntryNotFound
	}

	s.publish(ctx, TableBasket, notify.OpDelete, entryID.String())
	return nil
}

func (s *Postgres) DeleteBasketByUser(ctx context.Context, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM basket WHERE user_id = $1`, userID)
	if err != nil {
		return writeErr("delete user basket", err)
	}

	if affected, _ := result.RowsAffected(); affected > 0 {
		s.publish(ctx, TableBasket, notify.OpDelete, "")
	}
	return nil
}
