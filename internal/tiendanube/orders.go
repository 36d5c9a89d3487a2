package tiendanube

import (
	"context"
)

// CheckoutItem is one line of a hosted-checkout request
type CheckoutItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

// Checkout is the platform's hosted-checkout handle
type Checkout struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
}

// CreateCheckout creates a platform cart and returns the hosted checkout URL
func (c *Client) CreateCheckout(ctx context.Context, items []CheckoutItem) (*Checkout, error) {
	body := map[string]interface{}{
		"line_items": items,
	}

	var checkout Checkout
	if err := c.post(ctx, "/carts", body, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

// OrderProduct is one line of an order-creation request. Price is the
// platform's decimal-string form.
type OrderProduct struct {
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Name      string `json:"name,omitempty"`
}

// OrderCustomer identifies the buyer
type OrderCustomer struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Document string `json:"document,omitempty"`
}

// OrderAddress is the platform's shipping/billing address shape
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Number    string `json:"number"`
	Floor     string `json:"floor,omitempty"`
	Locality  string `json:"locality"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// CreateOrderPayload carries every field the platform requires for order
// creation. Payment and shipping are left pending so the platform generates
// a payment URL; the storefront never processes payments itself.
type CreateOrderPayload struct {
	Currency              string         `json:"currency"`
	Language              string         `json:"language"`
	Gateway               string         `json:"gateway"`
	PaymentStatus         string         `json:"payment_status"`
	Shipping              string         `json:"shipping"`
	ShippingStatus        string         `json:"shipping_status"`
	ShippingMinDays       int            `json:"shipping_min_days,omitempty"`
	ShippingMaxDays       int            `json:"shipping_max_days,omitempty"`
	ShippingCostOwner     string         `json:"shipping_cost_owner"`
	ShippingCostCustomer  string         `json:"shipping_cost_customer"`
	ShippingAddress       OrderAddress   `json:"shipping_address"`
	Customer              OrderCustomer  `json:"customer"`
	Products              []OrderProduct `json:"products"`
	Note                  string         `json:"note,omitempty"`
	SendConfirmationEmail bool           `json:"send_confirmation_email"`
	SendFulfillmentEmail  bool           `json:"send_fulfillment_email"`
}

// Order is the platform's order record as returned on creation
type Order struct {
	ID             int64  `json:"id"`
	Number         string `json:"number"`
	Token          string `json:"token"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"payment_status"`
	ShippingStatus string `json:"shipping_status"`
	PaymentURL     string `json:"payment_url,omitempty"`
	CheckoutURL    string `json:"checkout_url,omitempty"`
	Total          string `json:"total"`
	Subtotal       string `json:"subtotal"`
	Currency       string `json:"currency"`
}

// CreateOrder submits an order to the platform
func (c *Client) CreateOrder(ctx context.Context, payload CreateOrderPayload) (*Order, error) {
	var order Order
	if err := c.post(ctx, "/orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
