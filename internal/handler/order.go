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

type OrderHandler struct {
	svc *service.OrderService
	log *slog.Logger
}

func NewOrderHandler(svc *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondInternal(c, h.log, err, "Internal server error while fetching orders")
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	respondOK(c, http.StatusOK, "Orders retrieved successfully", gin.H{"orders": out})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	order, err := h.svc.Checkout(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		var missing *service.ProductMissingError
		var short *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			respondValidation(c, err)
		case errors.As(err, &missing):
			respondError(c, http.StatusNotFound,
				fmt.Sprintf("Product with ID %d not found", missing.ProductID))
		case errors.As(err, &short):
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for product %s. Only %d available.", short.ProductName, short.Available))
		default:
			respondInternal(c, h.log, err, "Internal server error while creating order")
		}
		return
	}

	respondOK(c, http.StatusCreated, "Order placed successfully", gin.H{"order": toOrderResponse(order)})
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.svc.Get(c.Request.Context(), orderID, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while fetching order")
		return
	}

	respondOK(c, http.StatusOK, "Order retrieved successfully", gin.H{"order": toOrderResponse(order)})
}
