package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vastraverse/storefront-api/internal/model"
	"github.com/vastraverse/storefront-api/internal/repository"
)

// maxItemQuantity mirrors the CHECK on cart_items.quantity; a merge may not
// push an existing row past it.
const maxItemQuantity = 10

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartLimitReached = errors.New("cart item quantity limit reached")
)

// StockShortError rejects a cart mutation that would exceed the product's
// live stock; Available feeds the user-facing message.
type StockShortError struct {
	Available int
}

func (e *StockShortError) Error() string {
	return fmt.Sprintf("only %d items available in stock", e.Available)
}

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) Get(ctx context.Context, userID int64) ([]model.CartItem, decimal.Decimal, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("list cart: %w", err)
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return items, total.Round(2), nil
}

// Add merges with an existing row for the same product instead of creating a
// duplicate. The returned flag reports whether a new row was created.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (bool, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return false, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return false, ErrProductNotFound
	}
	if product.Stock < quantity {
		return false, &StockShortError{Available: product.Stock}
	}

	existing, err := s.cartRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("get cart item: %w", err)
	}
	if existing != nil {
		merged := existing.Quantity + quantity
		if merged > maxItemQuantity {
			return false, ErrCartLimitReached
		}
		if merged > product.Stock {
			return false, &StockShortError{Available: product.Stock}
		}
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, merged); err != nil {
			return false, fmt.Errorf("merge cart item: %w", err)
		}
		return false, nil
	}

	if err := s.cartRepo.Insert(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return false, fmt.Errorf("insert cart item: %w", err)
	}
	return true, nil
}

func (s *CartService) Update(ctx context.Context, userID, itemID int64, quantity int) error {
	item, err := s.cartRepo.GetForUser(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("get cart item: %w", err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if quantity > item.Product.Stock {
		return &StockShortError{Available: item.Product.Stock}
	}
	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	item, err := s.cartRepo.GetForUser(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("get cart item: %w", err)
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	if err := s.cartRepo.Delete(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCartItemNotFound
		}
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Clear is idempotent; an already-empty cart is still a success.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	if err := s.cartRepo.ClearUser(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
