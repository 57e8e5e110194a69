package controllers

import (
	"net/http"

	"github.com/trailheadsupply/storefront/api/responses"
	"github.com/trailheadsupply/storefront/internal/cart"
	"github.com/trailheadsupply/storefront/internal/render"
	"github.com/trailheadsupply/storefront/internal/storage"
	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/types"
)

type cartSummaryResponse struct {
	Items     []types.CartItem  `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  string            `json:"subtotal"`
	Slots     map[string]string `json:"slots"`
}

type cartTotalsResponse struct {
	ItemCount  int               `json:"item_count"`
	Subtotal   string            `json:"subtotal"`
	Tax        string            `json:"tax"`
	Shipping   string            `json:"shipping"`
	OrderTotal string            `json:"order_total"`
	Slots      map[string]string `json:"slots"`
}

// CartSummary loads the stored cart and reports the item summary, the view
// state a summary panel would show before the shopper fills in the address.
func CartSummary(store storage.Store, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := render.NewSlotView(render.SlotSubtotal, render.SlotItemCount)
		calc, err := newSessionCalculator(r, store, view, cfg, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, _ := calc.Totals()
		responses.WriteSuccess(w, cartSummaryResponse{
			Items:     calc.Items(),
			ItemCount: totals.ItemCount,
			Subtotal:  totals.Subtotal.StringFixed(2),
			Slots:     view.Snapshot(),
		})
	}
}

// CartTotals runs the full totals pass, tax and shipping included. The
// storefront calls this when the shopper leaves the zip field.
func CartTotals(store storage.Store, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := render.NewSlotView(render.AllSlots()...)
		calc, err := newSessionCalculator(r, store, view, cfg, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := calc.ComputeOrderTotal(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to compute order total"))
			return
		}

		totals, _ := calc.Totals()
		responses.WriteSuccess(w, cartTotalsResponse{
			ItemCount:  totals.ItemCount,
			Subtotal:   totals.Subtotal.StringFixed(2),
			Tax:        totals.Tax.StringFixed(2),
			Shipping:   totals.Shipping.StringFixed(2),
			OrderTotal: totals.GrandTotal.StringFixed(2),
			Slots:      view.Snapshot(),
		})
	}
}

// newSessionCalculator builds a calculator for one request. The cart key may
// be overridden per request so multiple local carts can coexist.
func newSessionCalculator(r *http.Request, store storage.Store, view render.Renderer, cfg *config.Config, logg *logger.Logger) (*cart.Calculator, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart storage unavailable")
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		key = cfg.Storage.CartKey
	}

	calc, err := cart.NewCalculator(store, view, key, logg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to build calculator")
	}
	if err := calc.Init(r.Context()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart")
	}
	return calc, nil
}
