package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/middleware"
	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// CatalogHandler serves the browsing pages: home, listing and product detail.
type CatalogHandler struct {
	catalog  *store.Catalog
	cart     *store.Cart
	api      *shopapi.Client
	notifier notify.Notifier
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *store.Catalog, cart *store.Cart, api *shopapi.Client, notifier notify.Notifier) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, cart: cart, api: api, notifier: notifier}
}

// Home returns the home page composition: banners, media, latest arrivals
// and bestsellers.
func (h *CatalogHandler) Home(c *gin.Context) {
	utils.Success(c, 200, "Home page", gin.H{
		"banners":     h.catalog.Banners(),
		"media":       h.catalog.Media(),
		"latest":      h.catalog.Latest(10),
		"bestsellers": h.catalog.Bestsellers(5),
		"cartCount":   h.cart.Count(),
	})
}

// List returns the catalog listing filtered by category, sub-category and
// search text, in the requested sort order.
func (h *CatalogHandler) List(c *gin.Context) {
	products := h.catalog.List(store.Filter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		Search:      c.Query("search"),
		Sort:        store.SortOrder(c.Query("sort")),
	})
	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products":  products,
		"cartCount": h.cart.Count(),
	})
}

// Get returns a single product detail page.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product":       product,
		"averageRating": product.AverageRating(),
		"related":       h.catalog.List(store.Filter{Category: product.Category}),
		"cartCount":     h.cart.Count(),
	})
}

// Reload refetches the catalog from the backend on demand, e.g. after the
// initial fetch failed because the backend was down at startup.
func (h *CatalogHandler) Reload(c *gin.Context) {
	if err := h.catalog.Load(c.Request.Context()); err != nil {
		h.notifier.Notify(notify.LevelError, "Could not reach the store")
		utils.Error(c, 502, "BACKEND_UNAVAILABLE", err.Error())
		return
	}
	utils.Success(c, 200, "Catalog reloaded", gin.H{"products": len(h.catalog.Products())})
}

type reviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// SubmitReview forwards a review to the backend and appends it to the local
// catalog copy so the product page reflects it immediately.
func (h *CatalogHandler) SubmitReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Rating must be between 1 and 5")
		return
	}
	if _, ok := h.catalog.Get(req.ProductID); !ok {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}

	if err := h.api.SubmitReview(c.Request.Context(), req.ProductID, req.Rating, req.Comment); err != nil {
		h.notifier.Notify(notify.LevelError, "Could not submit your review")
		utils.Error(c, 502, "BACKEND_REJECTED", err.Error())
		return
	}

	user := middleware.GetUser(c)
	h.catalog.AppendReview(req.ProductID, models.Review{
		Rating:    req.Rating,
		Comment:   req.Comment,
		Author:    user.Name,
		CreatedAt: time.Now().UnixMilli(),
	})
	h.notifier.Notify(notify.LevelSuccess, "Review submitted")
	utils.Success(c, 200, "Review submitted", nil)
}
