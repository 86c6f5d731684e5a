package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vastraverse/storefront-api/internal/model"
	"github.com/vastraverse/storefront-api/internal/repository"
)

var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrAlreadyInWishlist    = errors.New("item already exists in wishlist")
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) Get(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	items, err := s.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return ErrProductNotFound
	}

	exists, err := s.wishlistRepo.Exists(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("check wishlist: %w", err)
	}
	if exists {
		return ErrAlreadyInWishlist
	}

	if err := s.wishlistRepo.Insert(ctx, &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		// A concurrent add can win between the existence check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyInWishlist
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, itemID int64) error {
	if err := s.wishlistRepo.Delete(ctx, itemID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWishlistItemNotFound
		}
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}

func (s *WishlistService) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	if err := s.wishlistRepo.DeleteByProduct(ctx, userID, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrWishlistItemNotFound
		}
		return fmt.Errorf("delete wishlist item by product: %w", err)
	}
	return nil
}
