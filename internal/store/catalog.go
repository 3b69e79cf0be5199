package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/pkg/shopapi"
)

// CatalogAPI is the slice of the backend client the catalog store uses.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListBanners(ctx context.Context) ([]models.Banner, error)
	ListMedia(ctx context.Context) ([]models.MediaItem, error)
}

// Catalog is the in-memory product catalog, fetched once at startup and read
// by every page that displays products.
type Catalog struct {
	mu       sync.RWMutex
	api      CatalogAPI
	products []models.Product
	byID     map[string]int
	banners  []models.Banner
	media    []models.MediaItem
}

// SortOrder controls catalog listing order.
type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortNewest    SortOrder = "newest"
)

// Filter narrows a catalog listing.
type Filter struct {
	Category    string
	SubCategory string
	Search      string
	Sort        SortOrder
}

// NewCatalog constructs an empty catalog backed by the given API.
func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api, byID: make(map[string]int)}
}

// Load fetches the product list from the backend. Banner and media fetches
// are cosmetic and only logged on failure; a product fetch failure is
// returned so the caller can surface it.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	banners, err := c.api.ListBanners(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("banner list fetch failed")
	}
	media, err := c.api.ListMedia(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("media list fetch failed")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = products
	c.byID = make(map[string]int, len(products))
	for i := range products {
		c.byID[products[i].ID] = i
	}
	c.banners = banners
	c.media = media
	log.Info().Int("products", len(products)).Msg("catalog loaded")
	return nil
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return c.products[i], true
}

// Products returns all products.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

// List returns products matching the filter, sorted per its sort order.
func (c *Catalog) List(f Filter) []models.Product {
	c.mu.RLock()
	out := make([]models.Product, 0, len(c.products))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range c.products {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.SubCategory != "" && !p.SubCategory.Contains(f.SubCategory) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	c.mu.RUnlock()

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return DiscountedUnitPrice(&out[i], Selector{}) < DiscountedUnitPrice(&out[j], Selector{})
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return DiscountedUnitPrice(&out[i], Selector{}) > DiscountedUnitPrice(&out[j], Selector{})
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	}
	return out
}

// Latest returns up to n most recently added products.
func (c *Catalog) Latest(n int) []models.Product {
	out := c.List(Filter{Sort: SortNewest})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Bestsellers returns up to n products flagged as bestsellers.
func (c *Catalog) Bestsellers(n int) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Product, 0, n)
	for _, p := range c.products {
		if p.Bestseller {
			out = append(out, p)
			if len(out) == n {
				break
			}
		}
	}
	return out
}

// AppendReview adds a review to the local copy of a product so the product
// page reflects a just-submitted review without refetching the catalog.
func (c *Catalog) AppendReview(productID string, review models.Review) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.byID[productID]; ok {
		c.products[i].Reviews = append(c.products[i].Reviews, review)
	}
}

// Banners returns the promotional banners.
func (c *Catalog) Banners() []models.Banner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Banner(nil), c.banners...)
}

// Media returns the home-page gallery entries.
func (c *Catalog) Media() []models.MediaItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.MediaItem(nil), c.media...)
}

var _ CatalogAPI = (*shopapi.Client)(nil)
