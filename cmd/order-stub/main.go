package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/trailheadsupply/storefront/pkg/logger"
	"github.com/trailheadsupply/storefront/pkg/types"
)

// order-stub is a local stand-in for the remote checkout service. Point
// STOREFRONT_CHECKOUT_URL at it to exercise the full flow offline.
//
// A zip of 00000 triggers the rejection path so failure handling can be
// tested end to end.
func main() {
	logg := logger.New(logger.Options{ServiceName: "order-stub"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "9090"
	}

	r := chi.NewRouter()
	r.Post("/checkout", handleCheckout(logg))

	ctx := logg.WithField(context.Background(), "addr", ":"+port)
	logg.Info(ctx, "starting order stub")

	if err := http.ListenAndServe(":"+port, r); err != nil {
		logg.Error(ctx, "order stub stopped unexpectedly", err)
		os.Exit(1)
	}
}

func handleCheckout(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var order types.OrderSubmission
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			writeJSON(w, http.StatusBadRequest, "Malformed order payload")
			return
		}

		ctx := logg.WithFields(r.Context(), map[string]any{
			"order_total": order.OrderTotal,
			"items":       len(order.Items),
		})

		if order.Zip == "00000" {
			logg.Info(ctx, "order rejected")
			writeJSON(w, http.StatusUnprocessableEntity, []string{"Card declined", "Invalid zip"})
			return
		}
		if len(order.Items) == 0 {
			logg.Info(ctx, "order rejected")
			writeJSON(w, http.StatusUnprocessableEntity, "Cart is empty")
			return
		}

		orderID := uuid.NewString()
		logg.Info(logg.WithOrderID(ctx, orderID), "order accepted")
		writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
