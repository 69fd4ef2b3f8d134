package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-api/internal/adapter/http/middleware"
	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.Checkout
	list     *usecase.ListOrders
	status   usecase.StatusCache
	repo     usecase.OrderRepo
}

func NewOrderHandler(checkout *usecase.Checkout, list *usecase.ListOrders, status usecase.StatusCache, repo usecase.OrderRepo) *OrderHandler {
	return &OrderHandler{checkout: checkout, list: list, status: status, repo: repo}
}

type checkoutReq struct {
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=upi cod"`
	PaymentRef    string `json:"paymentRef"`
}

type orderResp struct {
	OrderID       string         `json:"orderId"`
	PaymentID     string         `json:"paymentId"`
	PaymentMethod string         `json:"paymentMethod"`
	AmountPaise   int64          `json:"amountPaise"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	Items         []cartItemResp `json:"items"`
}

// POST /v1/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	order, err := h.checkout.Execute(ctx, usecase.CheckoutInput{
		UserID:        middleware.UserID(c),
		PaymentMethod: req.PaymentMethod,
		PaymentRef:    req.PaymentRef,
	})
	if err != nil {
		c.JSON(checkoutStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, orderView(order))
}

// GET /v1/orders
// Inside the fetch cooldown this serves the last known result; on a
// storage failure the previously loaded orders stay visible, marked stale.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.list.Execute(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrStorage) && len(orders) > 0 {
			c.JSON(http.StatusOK, gin.H{"orders": orderViews(orders), "stale": true})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "orders_unavailable", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orderViews(orders)})
}

// GET /v1/orders/:id/status
// The status mirror answers without touching storage when it can. Cache
// entries are keyed by owner, so another user's order id simply misses
// and falls through to the ownership check below.
func (h *OrderHandler) GetOrderStatus(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.UserID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if st, ok, err := h.status.GetStatus(ctx, userID, id); err == nil && ok {
		c.JSON(http.StatusOK, gin.H{"orderId": id, "status": string(st)})
		return
	}

	order, err := h.repo.GetByID(ctx, id)
	if err != nil || order == nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	_ = h.status.SetStatus(ctx, userID, id, order.Status)
	c.JSON(http.StatusOK, gin.H{"orderId": id, "status": string(order.Status)})
}

func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, usecase.ErrDuplicatePayment):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrStorage):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func orderView(o *domain.Order) orderResp {
	items := make([]cartItemResp, len(o.Items))
	for i, it := range o.Items {
		items[i] = cartItemResp{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPricePaise: it.UnitPricePaise,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Category:       it.Category,
			ImageURL:       it.ImageURL,
			Description:    it.Description,
		}
	}
	return orderResp{
		OrderID:       o.ID,
		PaymentID:     o.PaymentID,
		PaymentMethod: o.PaymentMethod,
		AmountPaise:   o.AmountPaise,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

func orderViews(orders []domain.Order) []orderResp {
	out := make([]orderResp, len(orders))
	for i := range orders {
		out[i] = orderView(&orders[i])
	}
	return out
}
