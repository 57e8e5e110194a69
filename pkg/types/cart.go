package types

// CartItem is one product line in the stored cart. Field names follow the
// storage contract: carts written by the storefront keep the catalog's
// capitalized keys plus a lowercase quantity.
type CartItem struct {
	ID       string  `json:"Id"`
	Name     string  `json:"Name"`
	Price    float64 `json:"FinalPrice"`
	Quantity int     `json:"quantity"`
}

// Normalize applies the load-time defaults exactly once: a missing or
// non-positive quantity counts as one. Prices are left as stored, including
// negative values, which propagate arithmetically.
func (i CartItem) Normalize() CartItem {
	if i.Quantity <= 0 {
		i.Quantity = 1
	}
	return i
}

// NormalizeItems returns a normalized copy of the provided items.
func NormalizeItems(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Normalize())
	}
	return out
}

// Product is a catalog entry served by the remote product feed.
type Product struct {
	ID         string  `json:"Id"`
	Name       string  `json:"Name"`
	Brand      string  `json:"Brand,omitempty"`
	FinalPrice float64 `json:"FinalPrice"`
}
