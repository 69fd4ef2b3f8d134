package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-api/internal/adapter/http/middleware"
	"github.com/freshcart/freshcart-api/internal/cart"
	domain "github.com/freshcart/freshcart-api/internal/entity"
)

// CartHandler exposes the session cart. Every response carries the full
// cart view with totals recomputed from the snapshot, so the client
// never has to derive pricing itself.
type CartHandler struct {
	carts *cart.Registry
}

func NewCartHandler(carts *cart.Registry) *CartHandler {
	return &CartHandler{carts: carts}
}

type addItemReq struct {
	ProductID      string `json:"productId" binding:"required"`
	Name           string `json:"name" binding:"required"`
	UnitPricePaise int64  `json:"unitPricePaise" binding:"gte=0"`
	Unit           string `json:"unit"`
	Category       string `json:"category"`
	ImageURL       string `json:"imageUrl"`
	Description    string `json:"description"`
}

type adjustQuantityReq struct {
	Delta int `json:"delta" binding:"required"`
}

type cartItemResp struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPricePaise int64  `json:"unitPricePaise"`
	Quantity       int    `json:"quantity"`
	Unit           string `json:"unit,omitempty"`
	Category       string `json:"category,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Description    string `json:"description,omitempty"`
}

type cartResp struct {
	Items            []cartItemResp `json:"items"`
	SubtotalPaise    int64          `json:"subtotalPaise"`
	TaxPaise         int64          `json:"taxPaise"`
	DeliveryFeePaise int64          `json:"deliveryFeePaise"`
	TotalPaise       int64          `json:"totalPaise"`
}

// GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.For(middleware.UserID(c))
	c.JSON(http.StatusOK, cartView(store.Snapshot()))
}

// POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	store := h.carts.For(middleware.UserID(c))
	store.Add(domain.LineItem{
		ProductID:      req.ProductID,
		Name:           req.Name,
		UnitPricePaise: req.UnitPricePaise,
		Unit:           req.Unit,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		Description:    req.Description,
	})
	c.JSON(http.StatusOK, cartView(store.Snapshot()))
}

// PATCH /v1/cart/items/:productId
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	var req adjustQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	store := h.carts.For(middleware.UserID(c))
	store.AdjustQuantity(c.Param("productId"), req.Delta)
	c.JSON(http.StatusOK, cartView(store.Snapshot()))
}

// DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.carts.For(middleware.UserID(c))
	store.Remove(c.Param("productId"))
	c.JSON(http.StatusOK, cartView(store.Snapshot()))
}

// DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts.For(middleware.UserID(c))
	store.Clear()
	c.JSON(http.StatusOK, cartView(store.Snapshot()))
}

func cartView(items []domain.LineItem) cartResp {
	resp := cartResp{
		Items:            make([]cartItemResp, len(items)),
		SubtotalPaise:    domain.Subtotal(items),
		TaxPaise:         domain.Tax(items),
		DeliveryFeePaise: domain.DeliveryFee(items),
		TotalPaise:       domain.Total(items),
	}
	for i, it := range items {
		resp.Items[i] = cartItemResp{
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
	return resp
}
