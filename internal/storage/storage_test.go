package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailheadsupply/storefront/pkg/types"
)

func TestMemoryStoreMissingKeyIsEmptyCart(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	items, err := store.GetCart(context.Background(), "so-cart")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestMemoryStoreRoundTripAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SetCart(ctx, "so-cart", []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 100, Quantity: 1},
	}))

	items, err := store.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "880RR", items[0].ID)

	require.NoError(t, store.SetCart(ctx, "so-cart", nil))
	items, err = store.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestDecodeCartAppliesQuantityDefaultOnce(t *testing.T) {
	t.Parallel()

	items, err := decodeCart([]byte(`[
		{"Id": "880RR", "Name": "Tent", "FinalPrice": 100},
		{"Id": "985RF", "Name": "Bag", "FinalPrice": 50, "quantity": 2}
	]`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].Quantity, "missing quantity defaults to 1")
	require.Equal(t, 2, items[1].Quantity)
	require.Equal(t, float64(0), mustItem(items, "880RR").Price-100)
}

func TestDecodeCartRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := decodeCart([]byte(`{"not": "a list"`))
	require.Error(t, err)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.SetCart(ctx, "so-cart", []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 100, Quantity: 1},
		{ID: "985RF", Name: "Bag", Price: 50, Quantity: 2},
	}))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	items, err := second.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Clearing one key must not disturb the others.
	require.NoError(t, second.SetCart(ctx, "so-wishlist", []types.CartItem{{ID: "X", Quantity: 1}}))
	require.NoError(t, second.SetCart(ctx, "so-cart", []types.CartItem{}))

	items, err = second.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Empty(t, items)

	wishlist, err := second.GetCart(ctx, "so-wishlist")
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Ping(ctx))

	items, err := store.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, store.SetCart(ctx, "so-cart", []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 100, Quantity: 1},
	}))
	require.NoError(t, store.SetCart(ctx, "so-cart", []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 100, Quantity: 3},
	}))

	items, err = store.GetCart(ctx, "so-cart")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func mustItem(items []types.CartItem, id string) types.CartItem {
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	return types.CartItem{}
}
