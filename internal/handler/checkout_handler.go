package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/peakform/storefront/internal/checkout"
	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
)

// CheckoutHandler serves the checkout page and order placement actions.
type CheckoutHandler struct {
	cart        *store.Cart
	checkout    *checkout.Service
	razorpayKey string
	currency    string
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(cart *store.Cart, svc *checkout.Service, razorpayKey, currency string) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, checkout: svc, razorpayKey: razorpayKey, currency: currency}
}

// Page returns the checkout page composition, including the publishable
// gateway key the hosted modal needs.
func (h *CheckoutHandler) Page(c *gin.Context) {
	utils.Success(c, 200, "Checkout page", gin.H{
		"lines":       h.cart.Lines(),
		"totals":      h.checkout.Totals(),
		"currency":    h.currency,
		"razorpayKey": h.razorpayKey,
		"methods":     []models.PaymentMethod{models.PaymentCOD, models.PaymentRazorpay},
	})
}

type placeOrderRequest struct {
	Address models.Address       `json:"address"`
	Method  models.PaymentMethod `json:"method"`
}

// PlaceOrder validates and places the order. COD clears the cart on success;
// Razorpay answers with the gateway order for the hosted modal and the cart
// survives until ConfirmPayment.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Malformed order payload")
		return
	}

	gatewayOrder, err := h.checkout.PlaceOrder(c.Request.Context(), req.Address, req.Method)
	switch {
	case err == nil:
		if gatewayOrder != nil {
			utils.Success(c, 200, "Payment started", gin.H{
				"order":       gatewayOrder,
				"razorpayKey": h.razorpayKey,
			})
			return
		}
		utils.Success(c, 200, "Order placed", gin.H{"redirect": "/orders"})
	case errors.Is(err, utils.ErrValidationFailed):
		utils.Error(c, 400, "VALIDATION_FAILED", "Please fill in all delivery details")
	case errors.Is(err, utils.ErrCartEmpty):
		utils.Error(c, 400, "CART_EMPTY", "Your cart is empty")
	case errors.Is(err, utils.ErrLoginRequired):
		utils.Error(c, 401, "LOGIN_REQUIRED", "Please log in to continue")
	default:
		utils.Error(c, 502, "BACKEND_REJECTED", err.Error())
	}
}

type confirmPaymentRequest struct {
	GatewayOrderID string `json:"razorpay_order_id" binding:"required"`
}

// ConfirmPayment completes a gateway payment after the hosted modal reports
// success.
func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "razorpay_order_id is required")
		return
	}
	if err := h.checkout.ConfirmPayment(c.Request.Context(), req.GatewayOrderID); err != nil {
		utils.Error(c, 502, "BACKEND_REJECTED", err.Error())
		return
	}
	utils.Success(c, 200, "Payment confirmed", gin.H{"redirect": "/orders"})
}
