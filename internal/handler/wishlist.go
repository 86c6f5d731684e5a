package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/middleware"
	"github.com/vastraverse/storefront-api/internal/service"
)

type WishlistHandler struct {
	svc *service.WishlistService
	log *slog.Logger
}

func NewWishlistHandler(svc *service.WishlistService, log *slog.Logger) *WishlistHandler {
	return &WishlistHandler{svc: svc, log: log}
}

func (h *WishlistHandler) Get(c *gin.Context) {
	items, err := h.svc.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching wishlist")
		return
	}

	out := make([]dto.WishlistItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toWishlistItemResponse(&items[i]))
	}
	respondOK(c, http.StatusOK, "Wishlist items retrieved successfully", dto.WishlistResponse{
		Items: out,
		Count: len(out),
	})
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req dto.AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.svc.Add(c.Request.Context(), middleware.GetUserID(c), req.ProductID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrAlreadyInWishlist):
			respondError(c, http.StatusConflict, "Item already exists in wishlist")
		default:
			respondInternal(c, h.log, err, "Internal server error while adding to wishlist")
		}
		return
	}

	respondOK(c, http.StatusCreated, "Item added to wishlist successfully", nil)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || itemID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid wishlist item ID")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			respondError(c, http.StatusNotFound, "Wishlist item not found")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while removing from wishlist")
		return
	}

	respondOK(c, http.StatusOK, "Item removed from wishlist successfully", nil)
}

func (h *WishlistHandler) RemoveByProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil || productID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.svc.RemoveByProduct(c.Request.Context(), middleware.GetUserID(c), productID); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			respondError(c, http.StatusNotFound, "Item not found in wishlist")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while removing from wishlist")
		return
	}

	respondOK(c, http.StatusOK, "Item removed from wishlist successfully", nil)
}
