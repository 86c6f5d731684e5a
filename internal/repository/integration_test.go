package repository

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastraverse/storefront-api/internal/model"
)

func seedUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name: "Test User", Email: email, Password: "hashed", Role: model.RoleCustomer,
	}
	require.NoError(t, NewUserRepository(testPool).Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, name, category string, price float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name: name, Description: "integration test product", Category: category,
		Image: "https://example.com/p.png",
		Price: decimal.NewFromFloat(price), Stock: stock,
	}
	require.NoError(t, NewProductRepository(testPool).Create(context.Background(), product))
	return product
}

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	cleanupTables(t)

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "dana@example.com")
	assert.Positive(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.GetByEmail(ctx, "dana@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, model.RoleCustomer, found.Role)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// A second insert with the same email trips the unique constraint.
	err = repo.Create(ctx, &model.User{
		Name: "Other User", Email: "dana@example.com", Password: "hashed", Role: model.RoleCustomer,
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProductRepo_ListFilters(t *testing.T) {
	cleanupTables(t)

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	seedProduct(t, "Cotton Shirt", "clothing", 19.99, 10)
	seedProduct(t, "Wool Sweater", "clothing", 49.99, 5)
	seedProduct(t, "Coffee Mug", "kitchen", 8.50, 20)

	products, total, err := repo.List(ctx, ProductFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 3)

	// "all" behaves like no category filter.
	_, total, err = repo.List(ctx, ProductFilter{Category: "all", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	products, total, err = repo.List(ctx, ProductFilter{Category: "clothing", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, products, 2)

	products, total, err = repo.List(ctx, ProductFilter{Search: "mug", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Coffee Mug", products[0].Name)

	products, total, err = repo.List(ctx, ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, products, 1)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
}

func TestCartRepo_LifecycleWithJoin(t *testing.T) {
	cleanupTables(t)

	repo := NewCartRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "cart@example.com")
	product := seedProduct(t, "Cotton Shirt", "clothing", 19.99, 10)

	item := &model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.Insert(ctx, item))
	assert.Positive(t, item.ID)

	existing, err := repo.GetByUserAndProduct(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, item.ID, existing.ID)

	joined, err := repo.GetForUser(ctx, item.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, joined)
	require.NotNil(t, joined.Product)
	assert.Equal(t, "Cotton Shirt", joined.Product.Name)
	assert.True(t, joined.Product.Price.Equal(decimal.NewFromFloat(19.99)))

	// Another user cannot see the item.
	other, err := repo.GetForUser(ctx, item.ID, user.ID+1)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.UpdateQuantity(ctx, item.ID, 5))
	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)

	require.NoError(t, repo.Delete(ctx, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), pgx.ErrNoRows)

	require.NoError(t, repo.ClearUser(ctx, user.ID))
}

func TestWishlistRepo_ScopedDelete(t *testing.T) {
	cleanupTables(t)

	repo := NewWishlistRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "wishlist@example.com")
	product := seedProduct(t, "Cotton Shirt", "clothing", 19.99, 10)

	item := &model.WishlistItem{UserID: user.ID, ProductID: product.ID}
	require.NoError(t, repo.Insert(ctx, item))

	exists, err := repo.Exists(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A second insert for the same pair trips the unique constraint.
	err = repo.Insert(ctx, &model.WishlistItem{UserID: user.ID, ProductID: product.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Deleting as a different user leaves the row in place.
	assert.ErrorIs(t, repo.Delete(ctx, item.ID, user.ID+1), pgx.ErrNoRows)

	items, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Cotton Shirt", items[0].Product.Name)

	require.NoError(t, repo.Delete(ctx, item.ID, user.ID))
	assert.ErrorIs(t, repo.DeleteByProduct(ctx, user.ID, product.ID), pgx.ErrNoRows)
}

func TestOrderRepo_PlaceCommitsEverything(t *testing.T) {
	cleanupTables(t)

	orderRepo := NewOrderRepository(testPool)
	cartRepo := NewCartRepository(testPool)
	productRepo := NewProductRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "order@example.com")
	product := seedProduct(t, "Cotton Shirt", "clothing", 19.99, 10)

	require.NoError(t, cartRepo.Insert(ctx, &model.CartItem{
		UserID: user.ID, ProductID: product.ID, Quantity: 2,
	}))

	order := &model.Order{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromFloat(39.98),
		Status:          model.OrderStatusPending,
		ShippingAddress: "221B Baker Street, London",
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: decimal.NewFromFloat(19.99)},
		},
	}
	require.NoError(t, orderRepo.Place(ctx, order))
	assert.Positive(t, order.ID)

	found, err := orderRepo.GetForUser(ctx, order.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, model.OrderStatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Cotton Shirt", found.Items[0].ProductName)

	// Stock was decremented and the cart purged in the same transaction.
	stocked, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stocked.Stock)

	items, err := cartRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Another user cannot read the order.
	other, err := orderRepo.GetForUser(ctx, order.ID, user.ID+1)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestOrderRepo_PlaceRefusedDecrementRollsBack(t *testing.T) {
	cleanupTables(t)

	orderRepo := NewOrderRepository(testPool)
	cartRepo := NewCartRepository(testPool)
	productRepo := NewProductRepository(testPool)
	ctx := context.Background()

	user := seedUser(t, "rollback@example.com")
	product := seedProduct(t, "Cotton Shirt", "clothing", 19.99, 1)

	require.NoError(t, cartRepo.Insert(ctx, &model.CartItem{
		UserID: user.ID, ProductID: product.ID, Quantity: 1,
	}))

	order := &model.Order{
		UserID:          user.ID,
		TotalAmount:     decimal.NewFromFloat(39.98),
		Status:          model.OrderStatusPending,
		ShippingAddress: "221B Baker Street, London",
		Items: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, Price: decimal.NewFromFloat(19.99)},
		},
	}
	err := orderRepo.Place(ctx, order)
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 1, stockErr.Available)

	// Nothing from the aborted transaction is visible.
	orders, err := orderRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	stocked, err := productRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stocked.Stock)

	items, err := cartRepo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
