package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/cart"
	"github.com/lassenware/storefront-api/internal/tiendanube"
	"github.com/lassenware/storefront-api/pkg/errors"
)

// CommerceGateway is the slice of the platform API checkout depends on
type CommerceGateway interface {
	CreateCheckout(ctx context.Context, items []tiendanube.CheckoutItem) (*tiendanube.Checkout, error)
	CreateOrder(ctx context.Context, payload tiendanube.CreateOrderPayload) (*tiendanube.Order, error)
}

type checkoutService struct {
	gateway CommerceGateway
	logger  *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(gateway CommerceGateway, logger *zap.Logger) *checkoutService {
	return &checkoutService{
		gateway: gateway,
		logger:  logger,
	}
}

// CustomerInfo is the buyer data collected at checkout. Empty fields get
// store defaults; the platform requires every field to be present.
type CustomerInfo struct {
	Name     string
	Email    string
	Phone    string
	Document string
}

// AddressInfo is the shipping destination collected at checkout
type AddressInfo struct {
	FirstName string
	LastName  string
	Address   string
	Number    string
	Floor     string
	Locality  string
	City      string
	Province  string
	Zipcode   string
	Country   string
	Phone     string
}

// CheckoutResult reports the created order and where to send the buyer
type CheckoutResult struct {
	OrderID    int64
	Number     string
	Total      string
	PaymentURL string
}

// CheckoutCart serializes the cart into a platform order (pending payment,
// so the platform issues a payment URL) and clears the cart only after the
// platform confirms creation.
func (s *checkoutService) CheckoutCart(
	ctx context.Context,
	store *cart.Store,
	customer CustomerInfo,
	address AddressInfo,
) (*CheckoutResult, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, &errors.ErrInvalidArgument{Field: "cart", Message: "cart is empty"}
	}

	products := make([]tiendanube.OrderProduct, 0, len(items))
	for _, item := range items {
		products = append(products, tiendanube.OrderProduct{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice.StringFixed(2),
			Name:      item.Name,
		})
	}

	payload := tiendanube.CreateOrderPayload{
		Currency:             "ARS",
		Language:             "es",
		Gateway:              "not-provided",
		PaymentStatus:        "pending",
		Shipping:             "not-provided",
		ShippingStatus:       "unpacked",
		ShippingMinDays:      3,
		ShippingMaxDays:      7,
		ShippingCostOwner:    "0.00",
		ShippingCostCustomer: "0.00",
		ShippingAddress: tiendanube.OrderAddress{
			FirstName: orDefault(address.FirstName, "Cliente"),
			LastName:  orDefault(address.LastName, "Web"),
			Address:   orDefault(address.Address, "Dirección pendiente"),
			Number:    orDefault(address.Number, "100"),
			Floor:     address.Floor,
			Locality:  orDefault(address.Locality, "Ciudad"),
			City:      orDefault(address.City, "Ciudad"),
			Province:  orDefault(address.Province, "Mendoza"),
			Zipcode:   orDefault(address.Zipcode, "5500"),
			Country:   orDefault(address.Country, "AR"),
			Phone:     orDefault(address.Phone, orDefault(customer.Phone, "0000000000")),
		},
		Customer: tiendanube.OrderCustomer{
			Name:     orDefault(customer.Name, "Cliente Web"),
			Email:    orDefault(customer.Email, "cliente@ejemplo.com"),
			Phone:    orDefault(customer.Phone, "0000000000"),
			Document: customer.Document,
		},
		Products:              products,
		SendConfirmationEmail: true,
	}

	order, err := s.gateway.CreateOrder(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("cart_id", store.ID().String()),
		zap.Int64("order_id", order.ID),
	)

	// Only a confirmed order empties the cart
	store.Clear(ctx)

	paymentURL := order.PaymentURL
	if paymentURL == "" {
		paymentURL = order.CheckoutURL
	}

	return &CheckoutResult{
		OrderID:    order.ID,
		Number:     order.Number,
		Total:      order.Total,
		PaymentURL: paymentURL,
	}, nil
}

// HostedCheckout hands the cart to the platform's hosted checkout. The cart
// is kept: the buyer may abandon the hosted flow and come back.
func (s *checkoutService) HostedCheckout(ctx context.Context, store *cart.Store) (*tiendanube.Checkout, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, &errors.ErrInvalidArgument{Field: "cart", Message: "cart is empty"}
	}

	checkoutItems := make([]tiendanube.CheckoutItem, 0, len(items))
	for _, item := range items {
		checkoutItems = append(checkoutItems, tiendanube.CheckoutItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	return s.gateway.CreateCheckout(ctx, checkoutItems)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
