package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/model"
	"github.com/vastraverse/storefront-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be a positive number")
)

type CatalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

func (s *CatalogService) List(ctx context.Context, q dto.ListProductsQuery) ([]model.Product, dto.Pagination, error) {
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("list products: %w", err)
	}
	return products, paginate(total, q.Limit, q.Offset), nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) ListByCategory(ctx context.Context, category string, limit, offset int) ([]model.Product, dto.Pagination, error) {
	products, total, err := s.productRepo.ListByCategory(ctx, category, limit, offset)
	if err != nil {
		return nil, dto.Pagination{}, fmt.Errorf("list products by category: %w", err)
	}
	return products, paginate(total, limit, offset), nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]model.CategoryCount, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	if req.Price.Sign() <= 0 {
		return nil, ErrInvalidPrice
	}
	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Stock:       req.Stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func paginate(total, limit, offset int) dto.Pagination {
	return dto.Pagination{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}
