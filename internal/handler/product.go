package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/service"
)

type ProductHandler struct {
	svc *service.CatalogService
	log *slog.Logger
}

func NewProductHandler(svc *service.CatalogService, log *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	products, pagination, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching products")
		return
	}

	respondOK(c, http.StatusOK, "Products retrieved successfully", gin.H{
		"products":   toProductResponses(products),
		"pagination": pagination,
	})
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while fetching product")
		return
	}

	respondOK(c, http.StatusOK, "Product retrieved successfully", gin.H{
		"product": toProductResponse(product),
	})
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")

	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	products, pagination, err := h.svc.ListByCategory(c.Request.Context(), category, q.Limit, q.Offset)
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching products by category")
		return
	}

	respondOK(c, http.StatusOK, "Products in "+category+" category retrieved successfully", gin.H{
		"products":   toProductResponses(products),
		"category":   category,
		"pagination": pagination,
	})
}

func (h *ProductHandler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching categories")
		return
	}

	out := make([]dto.CategoryCountResponse, 0, len(categories))
	for _, cc := range categories {
		out = append(out, dto.CategoryCountResponse(cc))
	}
	respondOK(c, http.StatusOK, "Categories retrieved successfully", gin.H{"categories": out})
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	product, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			respondValidation(c, err)
			return
		}
		respondInternal(c, h.log, err, "Internal server error while creating product")
		return
	}

	respondOK(c, http.StatusCreated, "Product created successfully", gin.H{
		"product": toProductResponse(product),
	})
}
