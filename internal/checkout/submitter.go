package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/trailheadsupply/storefront/internal/alert"
	"github.com/trailheadsupply/storefront/internal/cart"
	"github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/metrics"
	"github.com/trailheadsupply/storefront/pkg/types"
)

const genericFailureText = "There was an error processing your order. Please try again."

type totalsSource interface {
	Totals() (cart.OrderTotals, bool)
	Items() []types.CartItem
}

type cartWriter interface {
	SetCart(ctx context.Context, key string, items []types.CartItem) error
}

// OrderClient posts an assembled order to the remote checkout endpoint.
type OrderClient interface {
	Checkout(ctx context.Context, order types.OrderSubmission) (*types.OrderConfirmation, error)
	CheckoutURL() string
}

// Submitter assembles the wire-format order from the calculator's state and
// a submitted form, posts it once, and maps the outcome. The cart is only
// cleared after the service confirms success; any failure leaves it intact.
type Submitter struct {
	calc    totalsSource
	store   cartWriter
	client  OrderClient
	alerter alert.Alerter
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
	cartKey string
}

// SubmitterParams wires the submitter's collaborators.
type SubmitterParams struct {
	Calculator totalsSource
	Store      cartWriter
	Client     OrderClient
	Alerter    alert.Alerter
	Metrics    *metrics.CheckoutMetrics
	Logger     *logger.Logger
	CartKey    string
}

// NewSubmitter validates the wiring and builds a submitter.
func NewSubmitter(params SubmitterParams) (*Submitter, error) {
	if params.Calculator == nil {
		return nil, fmt.Errorf("calculator required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Client == nil {
		return nil, fmt.Errorf("order client required")
	}
	if params.CartKey == "" {
		return nil, fmt.Errorf("cart key required")
	}
	return &Submitter{
		calc:    params.Calculator,
		store:   params.Store,
		client:  params.Client,
		alerter: params.Alerter,
		metrics: params.Metrics,
		logg:    params.Logger,
		cartKey: params.CartKey,
	}, nil
}

// Checkout submits the order built from the current totals and form fields.
// On success the stored cart is reset to an empty list and the service's
// response is returned unchanged. On failure the normalized message is
// surfaced through a persistent alert and the original error is returned.
func (s *Submitter) Checkout(ctx context.Context, form types.CustomerForm) (*types.OrderConfirmation, error) {
	totals, computed := s.calc.Totals()
	if !computed {
		return nil, errors.New(errors.CodeValidation, "order totals have not been computed")
	}

	order := buildOrder(time.Now().UTC(), form, s.calc.Items(), totals)

	endpoint := s.client.CheckoutURL()
	s.metrics.IncAttempt(endpoint)
	start := time.Now()

	confirmation, err := s.client.Checkout(ctx, order)
	s.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(endpoint)
		message := normalizeFailure(err)
		if s.alerter != nil {
			s.alerter.Show(ctx, message, true)
		}
		if s.logg != nil {
			s.logg.Error(ctx, "checkout failed", err)
		}
		return nil, err
	}
	s.metrics.IncSuccess(endpoint)

	if err := s.store.SetCart(ctx, s.cartKey, []types.CartItem{}); err != nil {
		// The order is already placed; a stale local cart is the lesser harm.
		if s.logg != nil {
			s.logg.Error(ctx, "failed to clear cart after checkout", err)
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, confirmation.OrderID), "checkout confirmed")
	}
	return confirmation, nil
}

func buildOrder(now time.Time, form types.CustomerForm, items []types.CartItem, totals cart.OrderTotals) types.OrderSubmission {
	return types.OrderSubmission{
		OrderDate:  now.Format(time.RFC3339),
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Street:     form.Street,
		City:       form.City,
		State:      form.State,
		Zip:        form.Zip,
		CardNumber: form.CardNumber,
		Expiration: form.Expiration,
		Code:       form.Code,
		Items:      packageItems(items),
		OrderTotal: totals.GrandTotal.StringFixed(2),
		Shipping:   totals.Shipping.InexactFloat64(),
		Tax:        totals.Tax.StringFixed(2),
	}
}

func packageItems(items []types.CartItem) []types.PackagedItem {
	packaged := make([]types.PackagedItem, 0, len(items))
	for _, item := range items {
		packaged = append(packaged, types.PackagedItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return packaged
}

// normalizeFailure maps a submission error to display text. Service errors
// carry their decoded payload; anything else gets the generic message.
func normalizeFailure(err error) string {
	if svcErr := errors.AsService(err); svcErr != nil {
		if text := svcErr.Payload().Display(); text != "" {
			return text
		}
	}
	return genericFailureText
}
