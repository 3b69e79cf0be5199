package shopapi

import (
	"context"

	"github.com/peakform/storefront/internal/models"
)

type productListResponse struct {
	Success  bool             `json:"success"`
	Products []models.Product `json:"products"`
}

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var resp productListResponse
	if err := c.get(ctx, "/api/product/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

type reviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// SubmitReview appends a customer review to a product. Requires a session.
func (c *Client) SubmitReview(ctx context.Context, productID string, rating int, comment string) error {
	return c.post(ctx, "/api/product/review", reviewRequest{
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}, nil)
}

type bannerListResponse struct {
	Success bool            `json:"success"`
	Banners []models.Banner `json:"banners"`
}

// ListBanners fetches the promotional banners for the home page.
func (c *Client) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var resp bannerListResponse
	if err := c.get(ctx, "/api/banner/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Banners, nil
}

type mediaListResponse struct {
	Success bool               `json:"success"`
	Media   []models.MediaItem `json:"media"`
}

// ListMedia fetches the gallery entries for the home page.
func (c *Client) ListMedia(ctx context.Context) ([]models.MediaItem, error) {
	var resp mediaListResponse
	if err := c.get(ctx, "/api/media/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Media, nil
}
