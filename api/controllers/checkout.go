package controllers

import (
	"net/http"
	"sync/atomic"

	"github.com/trailheadsupply/storefront/api/responses"
	"github.com/trailheadsupply/storefront/api/validators"
	"github.com/trailheadsupply/storefront/internal/alert"
	"github.com/trailheadsupply/storefront/internal/checkout"
	"github.com/trailheadsupply/storefront/internal/storage"
	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/metrics"
	"github.com/trailheadsupply/storefront/pkg/types"
)

// CheckoutParams wires the collaborators the checkout handler needs.
type CheckoutParams struct {
	Store   storage.Store
	Client  checkout.OrderClient
	Alerter alert.Alerter
	Metrics *metrics.CheckoutMetrics
	Config  *config.Config
	Logger  *logger.Logger
}

// Checkout validates the submitted customer form, recomputes totals from the
// stored cart, and posts the order. Only one submission may be in flight at
// a time; a concurrent attempt is refused instead of double-charging.
func Checkout(params CheckoutParams) http.HandlerFunc {
	var inFlight atomic.Bool

	return func(w http.ResponseWriter, r *http.Request) {
		logg := params.Logger

		if params.Store == nil || params.Client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout dependencies unavailable"))
			return
		}

		// Form validation happens before the submission guard flips, so a
		// rejected form never blocks a concurrent valid attempt.
		var form types.CustomerForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if !inFlight.CompareAndSwap(false, true) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress"))
			return
		}
		defer inFlight.Store(false)

		calc, err := newSessionCalculator(r, params.Store, nil, params.Config, logg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := calc.ComputeOrderTotal(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to compute order total"))
			return
		}

		submitter, err := checkout.NewSubmitter(checkout.SubmitterParams{
			Calculator: calc,
			Store:      params.Store,
			Client:     params.Client,
			Alerter:    params.Alerter,
			Metrics:    params.Metrics,
			Logger:     logg,
			CartKey:    calc.Key(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to build submitter"))
			return
		}

		confirmation, err := submitter.Checkout(r.Context(), form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if len(confirmation.Body) > 0 {
			responses.WriteRaw(w, http.StatusCreated, confirmation.Body)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
