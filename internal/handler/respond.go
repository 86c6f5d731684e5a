package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/model"
)

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{Success: false, Message: message})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Response{
		Success: false,
		Message: "Validation failed",
		Errors:  []string{err.Error()},
	})
}

// respondInternal is the catch-all tail of every handler's error mapping.
// Pool-wait and request timeouts surface as a retryable 503; everything else
// is logged server-side and reported as an opaque 500.
func respondInternal(c *gin.Context, log *slog.Logger, err error, message string) {
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn("request timed out",
			"request_id", c.GetString("requestID"),
			"path", c.Request.URL.Path,
			"error", err,
		)
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry")
		return
	}
	log.Error(message,
		"request_id", c.GetString("requestID"),
		"path", c.Request.URL.Path,
		"error", err,
	)
	respondError(c, http.StatusInternalServerError, message)
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		Role:    user.Role,
	}
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toCartItemResponse(item *model.CartItem) dto.CartItemResponse {
	p := item.Product
	return dto.CartItemResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
	}
}

func toWishlistItemResponse(item *model.WishlistItem) dto.WishlistItemResponse {
	p := item.Product
	return dto.WishlistItemResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductID:   item.ProductID,
		CreatedAt:   item.CreatedAt,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Stock:       p.Stock,
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			CreatedAt: item.CreatedAt,
			Name:      item.ProductName,
			Image:     item.ProductImage,
			Category:  item.ProductCategory,
		})
	}
	return dto.OrderResponse{
		ID:              order.ID,
		UserID:          order.UserID,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Items:           items,
	}
}
