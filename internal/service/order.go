package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/model"
	"github.com/vastraverse/storefront-api/internal/repository"
)

var ErrOrderNotFound = errors.New("order not found")

// ProductMissingError names the order line whose product no longer exists.
type ProductMissingError struct {
	ProductID int64
}

func (e *ProductMissingError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InsufficientStockError names the product that cannot cover a requested
// order quantity.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: only %d available", e.ProductName, e.Available)
}

type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// Checkout prices the order against live products, then persists order,
// items, stock decrements, and the cart purge in one transaction. The
// client-submitted prices are validated for shape and then discarded; the
// stored price is the only one that counts.
func (s *OrderService) Checkout(ctx context.Context, userID int64, req dto.CreateOrderRequest) (*model.Order, error) {
	for _, line := range req.Items {
		if line.Price.Sign() <= 0 {
			return nil, ErrInvalidPrice
		}
	}

	total := decimal.Zero
	items := make([]model.OrderItem, 0, len(req.Items))
	names := make(map[int64]string, len(req.Items))
	for _, line := range req.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if product == nil {
			return nil, &ProductMissingError{ProductID: line.ProductID}
		}
		if product.Stock < line.Quantity {
			return nil, &InsufficientStockError{ProductName: product.Name, Available: product.Stock}
		}
		names[product.ID] = product.Name

		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, model.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &model.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          model.OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}
	if err := s.orderRepo.Place(ctx, order); err != nil {
		var stockErr *repository.StockError
		if errors.As(err, &stockErr) {
			// The transaction saw less stock than the pre-pass did; a
			// concurrent checkout won the race.
			return nil, &InsufficientStockError{
				ProductName: names[stockErr.ProductID],
				Available:   stockErr.Available,
			}
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	placed, err := s.orderRepo.GetForUser(ctx, order.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}
	if placed == nil {
		return order, nil
	}
	return placed, nil
}

func (s *OrderService) List(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get is scoped to the requesting user; someone else's order looks absent.
func (s *OrderService) Get(ctx context.Context, orderID, userID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
