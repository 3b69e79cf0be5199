package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/checkout"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
)

// CartHandler serves the cart page and the add/update actions. Both actions
// mutate the local ledger synchronously and always succeed; the backend
// mirror is queued behind them.
type CartHandler struct {
	catalog  *store.Catalog
	cart     *store.Cart
	checkout *checkout.Service
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(catalog *store.Catalog, cart *store.Cart, checkout *checkout.Service) *CartHandler {
	return &CartHandler{catalog: catalog, cart: cart, checkout: checkout}
}

// Page returns the cart page composition.
func (h *CartHandler) Page(c *gin.Context) {
	utils.Success(c, 200, "Cart page", gin.H{
		"lines":  h.cart.Lines(),
		"count":  h.cart.Count(),
		"totals": h.checkout.Totals(),
	})
}

type cartAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Selector  string `json:"selector"`
}

// Add increments the quantity for a (product, selector) pair by one.
func (h *CartHandler) Add(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "productId is required")
		return
	}
	if _, ok := h.catalog.Get(req.ProductID); !ok {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	h.cart.Add(req.ProductID, store.ParseSelector(req.Selector))
	utils.Success(c, 200, "Added to cart", gin.H{"count": h.cart.Count()})
}

type cartUpdateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Selector  string `json:"selector"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

// Update sets the quantity for a (product, selector) pair; zero removes it.
func (h *CartHandler) Update(c *gin.Context) {
	var req cartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "productId and quantity are required")
		return
	}

	h.cart.Update(req.ProductID, store.ParseSelector(req.Selector), *req.Quantity)
	utils.Success(c, 200, "Cart updated", gin.H{
		"count":  h.cart.Count(),
		"totals": h.checkout.Totals(),
	})
}
