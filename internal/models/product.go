package models

// Product represents a catalog product as served by the backend.
// The catalog is server-owned; the client treats products as read-only
// apart from locally appending a just-submitted review.
type Product struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Discount    float64        `json:"discount"`
	Category    string         `json:"category"`
	SubCategory SubCategory    `json:"subCategory"`
	Images      []string       `json:"image"`
	Variants    []Variant      `json:"variants,omitempty"`
	Groups      []VariantGroup `json:"variantGroups,omitempty"`
	Reviews     []Review       `json:"reviews,omitempty"`
	Bestseller  bool           `json:"bestseller"`
	InStock     bool           `json:"inStock"`
	Date        int64          `json:"date"`
}

// Variant is a purchasable configuration of a product. Price and Discount
// are pointers so an absent field is distinguishable from an explicit zero;
// an explicit zero discount overrides the product discount.
type Variant struct {
	UID      string   `json:"uid,omitempty"`
	Name     string   `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Discount *float64 `json:"discount,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	Images   []string `json:"image,omitempty"`
}

// VariantGroup is a labeled set of named options (e.g. Flavour: Chocolate,
// Vanilla). Groups combine into a composite selector; they do not map to a
// single Variants entry.
type VariantGroup struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Review is an append-only customer review on a product.
type Review struct {
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	Author    string `json:"name"`
	CreatedAt int64  `json:"date"`
}

// AverageRating returns the mean rating of a product's reviews, 0 when none.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}

// Banner is a promotional banner shown on the home page.
type Banner struct {
	ID     string `json:"_id"`
	Title  string `json:"title"`
	Image  string `json:"image"`
	Link   string `json:"link,omitempty"`
	Active bool   `json:"active"`
}

// MediaItem is a gallery entry (image or video) shown on the home page.
type MediaItem struct {
	ID    string `json:"_id"`
	Type  string `json:"type"` // "image" or "video"
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}
