package cart

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/trailheadsupply/storefront/internal/render"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/types"
)

// Pricing rules for the storefront: 6% tax on the item subtotal, flat 10
// for the first item plus 2 for each additional one.
var (
	taxRate          = decimal.New(6, -2)
	shippingBase     = decimal.NewFromInt(10)
	shippingPerExtra = decimal.NewFromInt(2)
)

// OrderTotals is the derived summary of the current cart. Values are stale
// until the corresponding compute step has run.
type OrderTotals struct {
	ItemCount  int
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
}

type cartLoader interface {
	GetCart(ctx context.Context, key string) ([]types.CartItem, error)
}

// Calculator owns the in-memory cart for a checkout session. It loads items
// from the storage port, derives totals on demand, and renders them into
// whatever slots the renderer exposes. Nothing else mutates its state.
type Calculator struct {
	store    cartLoader
	renderer render.Renderer
	key      string
	logg     *logger.Logger

	items          []types.CartItem
	totals         OrderTotals
	subtotalDone   bool
	orderTotalDone bool
}

// NewCalculator builds a calculator for the given storage key. The renderer
// may be nil when no output surface is attached.
func NewCalculator(store cartLoader, renderer render.Renderer, key string, logg *logger.Logger) (*Calculator, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if key == "" {
		return nil, fmt.Errorf("cart key required")
	}
	return &Calculator{
		store:    store,
		renderer: renderer,
		key:      key,
		logg:     logg,
	}, nil
}

// Init restores the cart from storage (empty if the key is absent) and
// computes the item summary.
func (c *Calculator) Init(ctx context.Context) error {
	items, err := c.store.GetCart(ctx, c.key)
	if err != nil {
		return err
	}
	c.items = items
	c.ComputeSubtotal(ctx)
	return nil
}

// ComputeSubtotal derives the item count and subtotal from the current
// list. Quantities were defaulted at load time; prices are taken as stored.
// Recomputing with an unchanged cart yields identical results.
func (c *Calculator) ComputeSubtotal(ctx context.Context) {
	count := 0
	subtotal := decimal.Zero
	for _, item := range c.items {
		count += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	c.totals.ItemCount = count
	c.totals.Subtotal = subtotal
	c.subtotalDone = true

	c.render(render.SlotSubtotal, money(subtotal))
	c.render(render.SlotItemCount, fmt.Sprintf("%d", count))
}

// ComputeOrderTotal derives tax, shipping, and the grand total. The subtotal
// must already be computed; submitting before this step is refused upstream.
func (c *Calculator) ComputeOrderTotal(ctx context.Context) error {
	if !c.subtotalDone {
		return fmt.Errorf("subtotal not computed")
	}

	c.totals.Tax = c.totals.Subtotal.Mul(taxRate)
	c.totals.Shipping = shippingFor(c.totals.ItemCount)
	c.totals.GrandTotal = c.totals.Subtotal.Add(c.totals.Tax).Add(c.totals.Shipping)
	c.orderTotalDone = true

	c.render(render.SlotTax, money(c.totals.Tax))
	c.render(render.SlotShipping, money(c.totals.Shipping))
	c.render(render.SlotOrderTotal, money(c.totals.GrandTotal))

	if c.logg != nil {
		ctx = c.logg.WithFields(ctx, map[string]any{
			"item_count":  c.totals.ItemCount,
			"subtotal":    c.totals.Subtotal.StringFixed(2),
			"order_total": c.totals.GrandTotal.StringFixed(2),
		})
		c.logg.Info(ctx, "order totals computed")
	}
	return nil
}

// Items returns a copy of the loaded cart lines.
func (c *Calculator) Items() []types.CartItem {
	out := make([]types.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals returns the current totals and whether the order total step has
// run. Callers must not submit an order while the second value is false.
func (c *Calculator) Totals() (OrderTotals, bool) {
	return c.totals, c.orderTotalDone
}

// Key reports the storage key this session owns.
func (c *Calculator) Key() string {
	return c.key
}

func (c *Calculator) render(slot, text string) {
	if c.renderer == nil {
		return
	}
	c.renderer.Set(slot, text)
}

func shippingFor(itemCount int) decimal.Decimal {
	if itemCount <= 0 {
		return decimal.Zero
	}
	extra := decimal.NewFromInt(int64(itemCount - 1))
	return shippingBase.Add(shippingPerExtra.Mul(extra))
}

func money(value decimal.Decimal) string {
	return "$" + value.StringFixed(2)
}
