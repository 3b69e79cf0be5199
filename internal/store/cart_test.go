package store_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/store"
)

// recordingMirror records mirror calls for assertions.
type recordingMirror struct {
	mu      sync.Mutex
	adds    []string
	updates []int
}

func (m *recordingMirror) MirrorAdd(itemID, selectorKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds = append(m.adds, itemID+"/"+selectorKey)
}

func (m *recordingMirror) MirrorUpdate(itemID, selectorKey string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, quantity)
}

func TestCartAddTwiceCountAndAmount(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Name: "Whey", Price: 1000, Discount: 10})
	cart := store.NewCart(catalog)

	none := store.ParseSelector("")
	cart.Add("p1", none)
	cart.Add("p1", none)

	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 1800.0, cart.Amount())
	assert.Equal(t, 2000.0, cart.OriginalAmount())
	assert.Equal(t, 200.0, cart.Savings())
}

func TestCartVariantsTrackedSeparately(t *testing.T) {
	catalog := loadedCatalog(t, wheyProduct())
	cart := store.NewCart(catalog)

	cart.Add("p1", store.ParseSelector(""))
	cart.Add("p1", store.ParseSelector("0"))

	assert.Equal(t, 2, cart.Count())
	// 900 (product level) + 1350 (chocolate 2kg variant)
	assert.Equal(t, 2250.0, cart.Amount())
}

func TestCartUpdateToZeroRemoves(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 1000, Discount: 10})
	cart := store.NewCart(catalog)
	sel := store.ParseSelector("")

	before := cart.Amount()
	cart.Add("p1", sel)
	cart.Update("p1", sel, 0)

	assert.Equal(t, 0, cart.Count())
	assert.Equal(t, before, cart.Amount())
	assert.Empty(t, cart.Snapshot())
}

func TestCartNegativeQuantityTreatedAsRemoval(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 100})
	cart := store.NewCart(catalog)
	sel := store.ParseSelector("")

	cart.Add("p1", sel)
	cart.Update("p1", sel, -3)

	assert.Equal(t, 0, cart.Count())
	assert.Equal(t, 0.0, cart.Amount())
}

func TestCartUnknownProductSkipped(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 100})
	cart := store.NewCart(catalog)

	cart.Add("p1", store.Selector{})
	cart.Add("ghost", store.Selector{})

	// The unknown entry still counts items but contributes no amount.
	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 100.0, cart.Amount())
	assert.Len(t, cart.Lines(), 1)
}

func TestCartReplacePrunesNonPositive(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 100}, models.Product{ID: "p2", Price: 50})
	cart := store.NewCart(catalog)

	cart.Replace(map[string]map[string]int{
		"p1": {"": 2, "0": 0},
		"p2": {"": -1},
	})

	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 200.0, cart.Amount())
}

func TestCartMirrorFiredAfterLocalWrite(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 100})
	cart := store.NewCart(catalog)
	mirror := &recordingMirror{}
	cart.SetMirror(mirror)

	cart.Add("p1", store.ParseSelector("v-choc-2kg"))
	cart.Update("p1", store.ParseSelector("v-choc-2kg"), 5)
	cart.Update("p1", store.ParseSelector("v-choc-2kg"), -2)

	require.Equal(t, []string{"p1/v-choc-2kg"}, mirror.adds)
	// Negative updates mirror as zero, the wire form of removal.
	assert.Equal(t, []int{5, 0}, mirror.updates)
}

func TestCartClear(t *testing.T) {
	catalog := loadedCatalog(t, models.Product{ID: "p1", Price: 100})
	cart := store.NewCart(catalog)

	cart.Add("p1", store.Selector{})
	cart.Clear()

	assert.Equal(t, 0, cart.Count())
	assert.Empty(t, cart.Snapshot())
}

func TestCartLinesResolveVariantPricing(t *testing.T) {
	catalog := loadedCatalog(t, wheyProduct())
	cart := store.NewCart(catalog)

	cart.Update("p1", store.ParseSelector("1"), 2)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1200.0, lines[0].UnitPrice)
	assert.Equal(t, 1080.0, lines[0].FinalPrice)
	assert.Equal(t, 2160.0, lines[0].LineTotal)
}
