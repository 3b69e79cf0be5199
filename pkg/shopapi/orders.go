package shopapi

import (
	"context"

	"github.com/peakform/storefront/internal/models"
)

// PlaceOrderRequest is the payload for both COD and gateway order placement.
type PlaceOrderRequest struct {
	Items   []models.OrderItem `json:"items"`
	Amount  float64            `json:"amount"`
	Address models.Address     `json:"address"`
}

// GatewayOrder identifies an order created at the payment gateway; the hosted
// checkout modal is opened against it by the caller.
type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type razorpayOrderResponse struct {
	Success bool         `json:"success"`
	Order   GatewayOrder `json:"order"`
}

type userOrdersRequest struct {
	UserID string `json:"userId"`
}

type userOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []models.Order `json:"orders"`
}

// PlaceOrder places a cash-on-delivery order.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) error {
	return c.post(ctx, "/api/order/place", req, nil)
}

// CreateRazorpayOrder registers the order with the payment gateway and
// returns the gateway order to open the hosted checkout against.
func (c *Client) CreateRazorpayOrder(ctx context.Context, req PlaceOrderRequest) (*GatewayOrder, error) {
	var resp razorpayOrderResponse
	if err := c.post(ctx, "/api/order/razorpay", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// VerifyRazorpay confirms a completed gateway payment with the backend.
func (c *Client) VerifyRazorpay(ctx context.Context, gatewayOrderID string) error {
	return c.post(ctx, "/api/order/verifyRazorpay", map[string]string{"razorpay_order_id": gatewayOrderID}, nil)
}

// UserOrders fetches order history for the given user.
func (c *Client) UserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var resp userOrdersResponse
	if err := c.post(ctx, "/api/order/userorders", userOrdersRequest{UserID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}
