package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/middleware"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// OrderHandler serves the order history page.
type OrderHandler struct {
	api *shopapi.Client
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(api *shopapi.Client) *OrderHandler {
	return &OrderHandler{api: api}
}

// List returns the session user's orders, newest first as the backend sends them.
func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.GetUser(c)
	orders, err := h.api.UserOrders(c.Request.Context(), user.ID)
	if err != nil {
		utils.Error(c, 502, "BACKEND_UNAVAILABLE", "Could not load your orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}
