package shopapi

import "context"

// CartData is the server-side cart snapshot: productID → selector key → quantity.
type CartData map[string]map[string]int

type cartAddRequest struct {
	ItemID string `json:"itemId"`
	Size   string `json:"size"`
}

type cartUpdateRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type cartGetResponse struct {
	Success  bool     `json:"success"`
	CartData CartData `json:"cartData"`
}

// AddCartItem mirrors a local add-to-cart to the backend.
func (c *Client) AddCartItem(ctx context.Context, itemID, size string) error {
	return c.post(ctx, "/api/cart/add", cartAddRequest{ItemID: itemID, Size: size}, nil)
}

// UpdateCartItem mirrors a local quantity change to the backend.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, size string, quantity int) error {
	return c.post(ctx, "/api/cart/update", cartUpdateRequest{ItemID: itemID, Size: size, Quantity: quantity}, nil)
}

// GetCart fetches the server-side cart snapshot for the session user.
func (c *Client) GetCart(ctx context.Context) (CartData, error) {
	var resp cartGetResponse
	if err := c.post(ctx, "/api/cart/get", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.CartData, nil
}
