package store

import (
	"sync"

	"github.com/peakform/storefront/internal/models"
)

// Mirror receives cart mutations for best-effort backend sync. Implementations
// must not block; failures must never roll back local state.
type Mirror interface {
	MirrorAdd(itemID, selectorKey string)
	MirrorUpdate(itemID, selectorKey string, quantity int)
}

// CartLine is one renderable cart row with resolved pricing.
type CartLine struct {
	ProductID  string  `json:"productId"`
	Selector   string  `json:"selector"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	FinalPrice float64 `json:"finalPrice"`
	LineTotal  float64 `json:"lineTotal"`
}

// Cart is the cart ledger: productID → selector key → quantity. All local
// mutations are synchronous and immediately visible; the mirror is fired
// after the local write and its outcome never affects the ledger.
type Cart struct {
	mu      sync.RWMutex
	items   map[string]map[string]int
	catalog *Catalog
	mirror  Mirror
}

// NewCart constructs an empty cart reading prices from the given catalog.
func NewCart(catalog *Catalog) *Cart {
	return &Cart{items: make(map[string]map[string]int), catalog: catalog}
}

// SetMirror attaches the best-effort backend mirror. A nil mirror disables
// mirroring (anonymous sessions).
func (c *Cart) SetMirror(m Mirror) {
	c.mu.Lock()
	c.mirror = m
	c.mu.Unlock()
}

// Add increments the quantity for (productID, selector) by one, creating the
// entry if absent.
func (c *Cart) Add(productID string, sel Selector) {
	key := sel.Key()

	c.mu.Lock()
	if c.items[productID] == nil {
		c.items[productID] = make(map[string]int)
	}
	c.items[productID][key]++
	mirror := c.mirror
	c.mu.Unlock()

	if mirror != nil {
		mirror.MirrorAdd(productID, key)
	}
}

// Update sets the quantity for (productID, selector) directly. A quantity of
// zero or less removes the entry.
func (c *Cart) Update(productID string, sel Selector, quantity int) {
	key := sel.Key()

	c.mu.Lock()
	if quantity <= 0 {
		if entry, ok := c.items[productID]; ok {
			delete(entry, key)
			if len(entry) == 0 {
				delete(c.items, productID)
			}
		}
	} else {
		if c.items[productID] == nil {
			c.items[productID] = make(map[string]int)
		}
		c.items[productID][key] = quantity
	}
	mirror := c.mirror
	c.mu.Unlock()

	if mirror != nil {
		mirror.MirrorUpdate(productID, key, max(quantity, 0))
	}
}

// Count returns the sum of all positive quantities.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, entry := range c.items {
		for _, qty := range entry {
			if qty > 0 {
				total += qty
			}
		}
	}
	return total
}

// Amount returns the discounted cart total. Entries whose product is no
// longer in the catalog are skipped.
func (c *Cart) Amount() float64 {
	return c.sum(DiscountedUnitPrice)
}

// OriginalAmount returns the cart total at pre-discount unit prices, used to
// display total savings.
func (c *Cart) OriginalAmount() float64 {
	return c.sum(UnitPrice)
}

// Savings returns OriginalAmount minus Amount, floored at zero.
func (c *Cart) Savings() float64 {
	s := c.OriginalAmount() - c.Amount()
	if s < 0 {
		return 0
	}
	return s
}

// Lines returns renderable cart rows for all positive-quantity entries whose
// product still exists, with resolved variant pricing and images.
func (c *Cart) Lines() []CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var lines []CartLine
	for productID, entry := range c.items {
		product, ok := c.catalog.Get(productID)
		if !ok {
			continue
		}
		for key, qty := range entry {
			if qty <= 0 {
				continue
			}
			sel := ParseSelector(key)
			final := DiscountedUnitPrice(&product, sel)
			line := CartLine{
				ProductID:  productID,
				Selector:   key,
				Name:       product.Name,
				Quantity:   qty,
				UnitPrice:  UnitPrice(&product, sel),
				FinalPrice: final,
				LineTotal:  final * float64(qty),
			}
			if v := ResolveVariant(&product, sel); v != nil && len(v.Images) > 0 {
				line.Image = v.Images[0]
			} else if len(product.Images) > 0 {
				line.Image = product.Images[0]
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// Snapshot returns a deep copy of the ledger.
func (c *Cart) Snapshot() map[string]map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]map[string]int, len(c.items))
	for productID, entry := range c.items {
		inner := make(map[string]int, len(entry))
		for key, qty := range entry {
			inner[key] = qty
		}
		out[productID] = inner
	}
	return out
}

// Replace swaps the ledger for a backend snapshot (cart hydration after
// login). Non-positive quantities are pruned on the way in.
func (c *Cart) Replace(data map[string]map[string]int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]map[string]int, len(data))
	for productID, entry := range data {
		for key, qty := range entry {
			if qty <= 0 {
				continue
			}
			if c.items[productID] == nil {
				c.items[productID] = make(map[string]int)
			}
			c.items[productID][key] = qty
		}
	}
}

// Clear empties the ledger. Used after successful order placement and on logout.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = make(map[string]map[string]int)
	c.mu.Unlock()
}

func (c *Cart) sum(unit func(*models.Product, Selector) float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for productID, entry := range c.items {
		product, ok := c.catalog.Get(productID)
		if !ok {
			continue
		}
		for key, qty := range entry {
			if qty <= 0 {
				continue
			}
			total += unit(&product, ParseSelector(key)) * float64(qty)
		}
	}
	return total
}
