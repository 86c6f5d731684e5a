package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/middleware"
	"github.com/vastraverse/storefront-api/internal/service"
)

type CartHandler struct {
	svc *service.CartService
	log *slog.Logger
}

func NewCartHandler(svc *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

func (h *CartHandler) Get(c *gin.Context) {
	items, total, err := h.svc.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching cart")
		return
	}

	out := make([]dto.CartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toCartItemResponse(&items[i]))
	}
	respondOK(c, http.StatusOK, "Cart items retrieved successfully", dto.CartResponse{
		Items: out,
		Total: total,
		Count: len(out),
	})
}

func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	created, err := h.svc.Add(c.Request.Context(), middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		var short *service.StockShortError
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrCartLimitReached):
			respondError(c, http.StatusBadRequest, "Cannot have more than 10 of the same item in the cart")
		case errors.As(err, &short):
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("Only %d items available in stock", short.Available))
		default:
			respondInternal(c, h.log, err, "Internal server error while adding to cart")
		}
		return
	}

	if created {
		respondOK(c, http.StatusCreated, "Item added to cart successfully", nil)
		return
	}
	respondOK(c, http.StatusOK, "Cart item quantity updated successfully", nil)
}

func (h *CartHandler) Update(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), middleware.GetUserID(c), itemID, req.Quantity); err != nil {
		var short *service.StockShortError
		switch {
		case errors.Is(err, service.ErrCartItemNotFound):
			respondError(c, http.StatusNotFound, "Cart item not found")
		case errors.As(err, &short):
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("Only %d items available in stock", short.Available))
		default:
			respondInternal(c, h.log, err, "Internal server error while updating cart")
		}
		return
	}

	respondOK(c, http.StatusOK, "Cart item updated successfully", nil)
}

func (h *CartHandler) Remove(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			respondError(c, http.StatusNotFound, "Cart item not found")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while removing from cart")
		return
	}

	respondOK(c, http.StatusOK, "Item removed from cart successfully", nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondInternal(c, h.log, err, "Internal server error while clearing cart")
		return
	}

	respondOK(c, http.StatusOK, "Cart cleared successfully", nil)
}
