package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vastraverse/storefront-api/internal/model"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	Insert(ctx context.Context, item *model.WishlistItem) error
	// Delete and DeleteByProduct return pgx.ErrNoRows when nothing matched,
	// so absent and not-owned items are indistinguishable.
	Delete(ctx context.Context, id, userID int64) error
	DeleteByProduct(ctx context.Context, userID, productID int64) error
}

type pgWishlistRepo struct{ pool *pgxpool.Pool }

func NewWishlistRepository(pool *pgxpool.Pool) WishlistRepository {
	return &pgWishlistRepo{pool: pool}
}

func (r *pgWishlistRepo) ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.user_id, w.product_id, w.created_at,
		       p.id, p.name, p.description, p.price, p.category, p.image, p.stock, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItem
	for rows.Next() {
		item := model.WishlistItem{Product: &model.Product{}}
		p := item.Product
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *pgWishlistRepo) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}
	return exists, nil
}

func (r *pgWishlistRepo) Insert(ctx context.Context, item *model.WishlistItem) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO wishlist_items (user_id, product_id, created_at)
		 VALUES ($1, $2, NOW()) RETURNING id, created_at`,
		item.UserID, item.ProductID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (r *pgWishlistRepo) Delete(ctx context.Context, id, userID int64) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgWishlistRepo) DeleteByProduct(ctx context.Context, userID, productID int64) error {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete wishlist item by product: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
