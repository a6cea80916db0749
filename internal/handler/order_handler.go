package handler

import (
	"errors"
	"net/http"

	"travel_booking/internal/middleware"
	"travel_booking/internal/model"
	"travel_booking/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderHandler handles order related requests
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Helper to get the authenticated user ID from context
func getAuthUserID(c *gin.Context) (primitive.ObjectID, error) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.AuthUserKey))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid user ID in token")
	}
	return userID, nil
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "Forbidden: Invalid token")
		return
	}

	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Type and amount are required to create an order.")
		return
	}

	order, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			respondError(c, http.StatusBadRequest, vErr.Message)
			return
		}
		respondInternal(c, err, "Failed to place order")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully!", "order": order})
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "Forbidden: Invalid token")
		return
	}

	orders, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, err, "Failed to fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req model.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Status is required.")
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, http.StatusBadRequest, "Invalid status value.")
		case errors.Is(err, service.ErrInvalidID):
			respondError(c, http.StatusBadRequest, "Invalid order ID format.")
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, "Order not found.")
		case errors.Is(err, service.ErrInvalidStatusTransition):
			respondError(c, http.StatusConflict, "Invalid status transition")
		default:
			respondInternal(c, err, "Failed to update order status")
		}
		return
	}
	c.JSON(http.StatusOK, order)
}
