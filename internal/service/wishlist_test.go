package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastraverse/storefront-api/internal/model"
	"github.com/vastraverse/storefront-api/internal/repository"
)

type mockWishlistRepo struct {
	mu       sync.Mutex
	items    map[int64]*model.WishlistItem
	nextID   int64
	products *mockProductRepo
}

func newMockWishlistRepo(products *mockProductRepo) *mockWishlistRepo {
	return &mockWishlistRepo{items: make(map[int64]*model.WishlistItem), products: products}
}

func (m *mockWishlistRepo) ListByUser(_ context.Context, userID int64) ([]model.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.WishlistItem
	for _, item := range m.items {
		if item.UserID != userID {
			continue
		}
		cp := *item
		if p, err := m.products.GetByID(context.Background(), item.ProductID); err == nil && p != nil {
			cp.Product = p
		}
		out = append(out, cp)
	}
	return out, nil
}

func (m *mockWishlistRepo) Exists(_ context.Context, userID, productID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockWishlistRepo) Insert(_ context.Context, item *model.WishlistItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockWishlistRepo) Delete(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *mockWishlistRepo) DeleteByProduct(_ context.Context, userID, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			delete(m.items, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func TestWishlistService_Add(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	wishlists := newMockWishlistRepo(products)
	svc := NewWishlistService(wishlists, products)

	require.NoError(t, svc.Add(context.Background(), 1, shirt.ID))

	items, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, shirt.ID, items[0].ProductID)
}

func TestWishlistService_Add_Duplicate(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	wishlists := newMockWishlistRepo(products)
	svc := NewWishlistService(wishlists, products)

	require.NoError(t, svc.Add(context.Background(), 1, shirt.ID))
	err := svc.Add(context.Background(), 1, shirt.ID)
	assert.ErrorIs(t, err, ErrAlreadyInWishlist)

	items, _ := svc.Get(context.Background(), 1)
	assert.Len(t, items, 1)
}

// raceWishlistRepo simulates a concurrent add winning between the existence
// check and the insert.
type raceWishlistRepo struct{ *mockWishlistRepo }

func (r *raceWishlistRepo) Exists(context.Context, int64, int64) (bool, error) {
	return false, nil
}

func (r *raceWishlistRepo) Insert(context.Context, *model.WishlistItem) error {
	return repository.ErrDuplicate
}

func TestWishlistService_Add_LostInsertRace(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	svc := NewWishlistService(&raceWishlistRepo{newMockWishlistRepo(products)}, products)

	err := svc.Add(context.Background(), 1, shirt.ID)
	assert.ErrorIs(t, err, ErrAlreadyInWishlist)
}

func TestWishlistService_Add_UnknownProduct(t *testing.T) {
	products := newMockProductRepo()
	svc := NewWishlistService(newMockWishlistRepo(products), products)

	err := svc.Add(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestWishlistService_Remove(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	wishlists := newMockWishlistRepo(products)
	svc := NewWishlistService(wishlists, products)

	require.NoError(t, svc.Add(context.Background(), 1, shirt.ID))
	items, _ := svc.Get(context.Background(), 1)
	require.Len(t, items, 1)

	require.NoError(t, svc.Remove(context.Background(), 1, items[0].ID))

	items, _ = svc.Get(context.Background(), 1)
	assert.Empty(t, items)
}

func TestWishlistService_Remove_NotOwned(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	wishlists := newMockWishlistRepo(products)
	svc := NewWishlistService(wishlists, products)

	require.NoError(t, svc.Add(context.Background(), 1, shirt.ID))
	items, _ := svc.Get(context.Background(), 1)
	require.Len(t, items, 1)

	err := svc.Remove(context.Background(), 2, items[0].ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}

func TestWishlistService_RemoveByProduct(t *testing.T) {
	products := newMockProductRepo()
	shirt := products.add(model.Product{Name: "Shirt", Category: "clothing",
		Price: decimal.NewFromFloat(19.99), Stock: 10})
	wishlists := newMockWishlistRepo(products)
	svc := NewWishlistService(wishlists, products)

	require.NoError(t, svc.Add(context.Background(), 1, shirt.ID))
	require.NoError(t, svc.RemoveByProduct(context.Background(), 1, shirt.ID))

	err := svc.RemoveByProduct(context.Background(), 1, shirt.ID)
	assert.ErrorIs(t, err, ErrWishlistItemNotFound)
}
