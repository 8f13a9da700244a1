package cart_test

import (
	"math/rand"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/cart"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	productA = models.Product{ID: 1, NameEn: "Teak Bed", NameBn: "সেগুন খাট", Price: 100, Category: models.CategoryBed}
	productB = models.Product{ID: 2, NameEn: "Sofa", NameBn: "সোফা", Price: 50, Category: models.CategorySofa}
	productC = models.Product{ID: 3, NameEn: "Cupboard", NameBn: "আলমারি", Price: 75.5, Category: models.CategoryCupboard}
)

func newStore() (*cart.Store, *notify.Recorder) {
	rec := &notify.Recorder{}
	return cart.NewStore(rec, "en"), rec
}

func TestAdd(t *testing.T) {
	t.Run("Success - Same product twice merges into one line", func(t *testing.T) {
		store, _ := newStore()

		store.Add(productA)
		store.Add(productA)

		items := store.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("Success - Insertion order is kept", func(t *testing.T) {
		store, _ := newStore()

		store.Add(productB)
		store.Add(productA)
		store.Add(productB)

		items := store.Items()
		require.Len(t, items, 2)
		assert.Equal(t, productB.ID, items[0].Product.ID)
		assert.Equal(t, productA.ID, items[1].Product.ID)
	})

	t.Run("Success - Notification names the product", func(t *testing.T) {
		store, rec := newStore()

		store.Add(productB)

		last, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, "Sofa added to cart!", last.Description)
		assert.Equal(t, notify.VariantDefault, last.Variant)
	})

	t.Run("Success - Bengali product name", func(t *testing.T) {
		rec := &notify.Recorder{}
		store := cart.NewStore(rec, "bn")

		store.Add(productB)

		last, _ := rec.Last()
		assert.Equal(t, "সোফা added to cart!", last.Description)
	})
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		expected int
	}{
		{name: "Success - Sets exact quantity", quantity: 5, expected: 5},
		{name: "Success - One is allowed", quantity: 1, expected: 1},
		{name: "Failure - Zero is a no-op", quantity: 0, expected: 2},
		{name: "Failure - Negative is a no-op", quantity: -1, expected: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newStore()
			store.Add(productA)
			store.Add(productA)

			store.UpdateQuantity(productA.ID, tc.quantity)

			items := store.Items()
			require.Len(t, items, 1)
			assert.Equal(t, tc.expected, items[0].Quantity)
		})
	}

	t.Run("Success - Unknown product is ignored", func(t *testing.T) {
		store, _ := newStore()
		store.Add(productA)

		store.UpdateQuantity(99, 4)

		assert.Equal(t, 1, store.Count())
	})
}

func TestRemoveAndClear(t *testing.T) {
	store, _ := newStore()
	store.Add(productA)
	store.Add(productB)

	store.Remove(99)
	assert.Len(t, store.Items(), 2)

	store.Remove(productA.ID)
	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, productB.ID, items[0].Product.ID)

	store.Clear()
	assert.True(t, store.IsEmpty())
	assert.Zero(t, store.Count())
	assert.Zero(t, store.Total())
}

func TestItemsReturnsCopy(t *testing.T) {
	store, _ := newStore()
	store.Add(productA)

	items := store.Items()
	items[0].Quantity = 40

	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestScenario(t *testing.T) {
	store, _ := newStore()

	store.Add(productA)
	store.Add(productA)
	store.Add(productB)

	assert.Len(t, store.Items(), 2)
	assert.Equal(t, 3, store.Count())
	assert.InDelta(t, 250.0, store.Total(), 0.0001)
}

func TestDerivedValuesAfterRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []models.Product{productA, productB, productC}

	for round := 0; round < 50; round++ {
		store, _ := newStore()

		for step := 0; step < 30; step++ {
			product := products[rng.Intn(len(products))]
			switch rng.Intn(3) {
			case 0:
				store.Add(product)
			case 1:
				store.Remove(product.ID)
			case 2:
				store.UpdateQuantity(product.ID, rng.Intn(6)-1)
			}

			var wantTotal float64
			wantCount := 0
			for _, item := range store.Items() {
				require.GreaterOrEqual(t, item.Quantity, 1)
				wantCount += item.Quantity
				wantTotal += item.Product.Price * float64(item.Quantity)
			}

			assert.Equal(t, wantCount, store.Count())
			assert.InDelta(t, wantTotal, store.Total(), 0.0001)
		}
	}
}
