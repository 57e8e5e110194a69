package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trailheadsupply/storefront/pkg/types"
)

func TestCartSummaryReportsItemsAndSlots(t *testing.T) {
	store := seedStore(t, []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 50, Quantity: 2},
		{ID: "985RF", Name: "Bag", Price: 20, Quantity: 1},
	})

	handler := CartSummary(store, testConfig(), nil)
	req := httptest.NewRequest("GET", "/api/cart/summary", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data cartSummaryResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", envelope.Data.ItemCount)
	}
	if envelope.Data.Subtotal != "120.00" {
		t.Fatalf("unexpected subtotal %q", envelope.Data.Subtotal)
	}
	if envelope.Data.Slots["subtotal"] != "$120.00" {
		t.Fatalf("unexpected subtotal slot %q", envelope.Data.Slots["subtotal"])
	}
	if len(envelope.Data.Items) != 2 {
		t.Fatalf("expected 2 cart lines, got %d", len(envelope.Data.Items))
	}
}

func TestCartSummaryEmptyCart(t *testing.T) {
	handler := CartSummary(seedStore(t, nil), testConfig(), nil)
	req := httptest.NewRequest("GET", "/api/cart/summary", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data cartSummaryResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 0 || envelope.Data.Subtotal != "0.00" {
		t.Fatalf("unexpected empty-cart summary %+v", envelope.Data)
	}
}

func TestCartTotalsComputesFullBreakdown(t *testing.T) {
	store := seedStore(t, []types.CartItem{
		{ID: "880RR", Name: "Tent", Price: 50, Quantity: 2},
		{ID: "985RF", Name: "Bag", Price: 20, Quantity: 1},
	})

	handler := CartTotals(store, testConfig(), nil)
	req := httptest.NewRequest("POST", "/api/cart/totals", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data cartTotalsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Tax != "7.20" || envelope.Data.Shipping != "14.00" || envelope.Data.OrderTotal != "141.20" {
		t.Fatalf("unexpected totals %+v", envelope.Data)
	}
	if envelope.Data.Slots["order-total"] != "$141.20" {
		t.Fatalf("unexpected order total slot %q", envelope.Data.Slots["order-total"])
	}
}

func TestCartTotalsHonorsKeyOverride(t *testing.T) {
	store := seedStore(t, nil)
	if err := store.SetCart(context.Background(), "alt-cart", []types.CartItem{{ID: "a", Price: 10, Quantity: 1}}); err != nil {
		t.Fatalf("seed alt cart: %v", err)
	}

	handler := CartTotals(store, testConfig(), nil)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("POST", "/api/cart/totals?key=alt-cart", nil))

	var envelope struct {
		Data cartTotalsResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 1 {
		t.Fatalf("expected override cart, got %+v", envelope.Data)
	}
}
