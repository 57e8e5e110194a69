package types

import "encoding/json"

// CustomerForm carries the submitted checkout fields. Values are copied
// verbatim onto the order; the only gate is the declared required/format
// constraints applied at the boundary.
type CustomerForm struct {
	FirstName  string `json:"fname" validate:"required"`
	LastName   string `json:"lname" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Zip        string `json:"zip" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	Expiration string `json:"expiration" validate:"required"`
	Code       string `json:"code" validate:"required"`
}

// PackagedItem is the wire shape of a cart line inside an order.
type PackagedItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderSubmission is the body POSTed to the remote checkout endpoint. Tax
// and order total travel as two-decimal strings, shipping as a plain number.
type OrderSubmission struct {
	OrderDate  string         `json:"orderDate"`
	FirstName  string         `json:"fname"`
	LastName   string         `json:"lname"`
	Street     string         `json:"street"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	Zip        string         `json:"zip"`
	CardNumber string         `json:"cardNumber"`
	Expiration string         `json:"expiration"`
	Code       string         `json:"code"`
	Items      []PackagedItem `json:"items"`
	OrderTotal string         `json:"orderTotal"`
	Shipping   float64        `json:"shipping"`
	Tax        string         `json:"tax"`
}

// OrderConfirmation is the service's success response. The full body is
// preserved so callers receive the response unchanged.
type OrderConfirmation struct {
	OrderID string          `json:"orderId"`
	Body    json.RawMessage `json:"-"`
}
