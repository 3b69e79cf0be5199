package store

import (
	"math"

	"github.com/peakform/storefront/internal/models"
)

// ResolveVariant returns the variant a selector denotes, or nil when the
// selector carries no variant reference or the reference is stale (index out
// of range, unknown uid). Composite group keys identify a configuration, not
// a Variants entry, so they resolve to nil as well.
func ResolveVariant(p *models.Product, sel Selector) *models.Variant {
	if p == nil {
		return nil
	}
	switch sel.Kind {
	case SelectorIndex:
		if sel.Index >= 0 && sel.Index < len(p.Variants) {
			return &p.Variants[sel.Index]
		}
	case SelectorUID:
		for i := range p.Variants {
			if p.Variants[i].UID != "" && p.Variants[i].UID == sel.UID {
				return &p.Variants[i]
			}
		}
	}
	return nil
}

// UnitPrice resolves the pre-discount unit price: the variant override when
// the selector denotes a variant that defines one, the product price otherwise.
func UnitPrice(p *models.Product, sel Selector) float64 {
	if v := ResolveVariant(p, sel); v != nil && v.Price != nil {
		return *v.Price
	}
	return p.Price
}

// DiscountPercent resolves the discount independently of the price: a variant
// that defines a discount overrides the product discount even when the value
// is an explicit zero.
func DiscountPercent(p *models.Product, sel Selector) float64 {
	if v := ResolveVariant(p, sel); v != nil && v.Discount != nil {
		return *v.Discount
	}
	return p.Discount
}

// DiscountedUnitPrice is the final unit price after applying the resolved
// discount, rounded half-up to a whole amount.
func DiscountedUnitPrice(p *models.Product, sel Selector) float64 {
	price := UnitPrice(p, sel)
	return roundHalfUp(price - price*DiscountPercent(p, sel)/100)
}

// roundHalfUp rounds to the nearest whole amount with .5 going up.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
