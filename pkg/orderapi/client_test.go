package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/trailheadsupply/storefront/pkg/config"
	pkgerrors "github.com/trailheadsupply/storefront/pkg/errors"
	"github.com/trailheadsupply/storefront/pkg/types"
)

func newTestClient(t *testing.T, checkoutURL, catalogBaseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.ServicesConfig{
		CheckoutURL:    checkoutURL,
		CatalogBaseURL: catalogBaseURL,
		HTTPTimeout:    5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCheckoutSuccessReturnsConfirmationWithRawBody(t *testing.T) {
	t.Parallel()

	var received types.OrderSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode order: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orderId": "1147", "status": "received"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	conf, err := client.Checkout(context.Background(), types.OrderSubmission{
		OrderDate:  "2024-01-01T00:00:00Z",
		OrderTotal: "116.00",
		Tax:        "6.00",
		Shipping:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.OrderID != "1147" {
		t.Fatalf("unexpected order id %q", conf.OrderID)
	}
	if string(conf.Body) != `{"orderId": "1147", "status": "received"}` {
		t.Fatalf("expected raw body preserved, got %s", conf.Body)
	}
	if received.OrderTotal != "116.00" || received.Tax != "6.00" {
		t.Fatalf("order totals should travel as strings, got %+v", received)
	}
}

func TestCheckoutNonSuccessYieldsServiceError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`["Card declined", "Invalid zip"]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.Checkout(context.Background(), types.OrderSubmission{})
	if err == nil {
		t.Fatal("expected error")
	}
	svcErr := pkgerrors.AsService(err)
	if svcErr == nil {
		t.Fatalf("expected service error, got %v", err)
	}
	if svcErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", svcErr.Status)
	}
	if string(svcErr.RawMessage) != `["Card declined", "Invalid zip"]` {
		t.Fatalf("expected verbatim payload, got %s", svcErr.RawMessage)
	}
	if got := svcErr.Payload().Display(); got != "Card declined\nInvalid zip" {
		t.Fatalf("unexpected normalized message %q", got)
	}
}

func TestCheckoutTransportFailureYieldsDependencyError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(t, srv.URL, "")
	_, err := client.Checkout(context.Background(), types.OrderSubmission{})
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if pkgerrors.AsService(err) != nil {
		t.Fatal("transport failures must not look like service errors")
	}
}

func TestProductsFetchesCategoryFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tents.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"Id": "880RR", "Name": "Tent", "FinalPrice": 100}]`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/checkout", srv.URL)
	products, err := client.Products(context.Background(), "tents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "880RR" {
		t.Fatalf("unexpected products %+v", products)
	}

	product, err := client.FindProductByID(context.Background(), "tents", "880RR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.FinalPrice != 100 {
		t.Fatalf("unexpected product %+v", product)
	}

	if _, err := client.FindProductByID(context.Background(), "tents", "missing"); err == nil {
		t.Fatal("expected not found error")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestProductsRequiresCatalogBaseURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost/checkout", "")
	if _, err := client.Products(context.Background(), "tents"); err == nil {
		t.Fatal("expected validation error without catalog base url")
	}
}

func TestNewClientRequiresCheckoutURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.ServicesConfig{}, nil); err == nil {
		t.Fatal("expected error without checkout url")
	}
}
