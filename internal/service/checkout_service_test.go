package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lassenware/storefront-api/internal/cart"
	"github.com/lassenware/storefront-api/internal/domain"
	"github.com/lassenware/storefront-api/internal/tiendanube"
	"github.com/lassenware/storefront-api/pkg/errors"
)

type fakeGateway struct {
	lastOrder    *tiendanube.CreateOrderPayload
	lastCheckout []tiendanube.CheckoutItem
	orderErr     error
}

func (f *fakeGateway) CreateOrder(_ context.Context, payload tiendanube.CreateOrderPayload) (*tiendanube.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.lastOrder = &payload
	return &tiendanube.Order{
		ID:         555,
		Number:     "1042",
		Total:      "350.00",
		PaymentURL: "https://pay.example.com/555",
	}, nil
}

func (f *fakeGateway) CreateCheckout(_ context.Context, items []tiendanube.CheckoutItem) (*tiendanube.Checkout, error) {
	f.lastCheckout = items
	return &tiendanube.Checkout{ID: "chk-1", CheckoutURL: "https://checkout.example.com/chk-1"}, nil
}

type memoryCartRepo struct {
	snapshots map[uuid.UUID][]domain.LineItem
}

func (m *memoryCartRepo) Get(_ context.Context, id uuid.UUID) ([]domain.LineItem, error) {
	items, ok := m.snapshots[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "cart", ID: id.String()}
	}
	return items, nil
}

func (m *memoryCartRepo) Save(_ context.Context, id uuid.UUID, items []domain.LineItem) error {
	m.snapshots[id] = items
	return nil
}

func (m *memoryCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.snapshots, id)
	return nil
}

func cartWithItems(t *testing.T) *cart.Store {
	t.Helper()
	repo := &memoryCartRepo{snapshots: make(map[uuid.UUID][]domain.LineItem)}
	store := cart.NewStore(uuid.New(), repo, zap.NewNop())

	ctx := context.Background()
	store.AddItem(ctx, cart.NewItem{ProductID: 1, VariantID: 7, Name: "Remera", UnitPrice: decimal.RequireFromString("100.50")})
	store.AddItem(ctx, cart.NewItem{ProductID: 1, VariantID: 7, Name: "Remera", UnitPrice: decimal.RequireFromString("100.50")})
	store.AddItem(ctx, cart.NewItem{ProductID: 2, VariantID: 9, Name: "Gorra", UnitPrice: decimal.NewFromInt(149)})
	return store
}

func TestCheckoutCart_BuildsOrderAndClearsCart(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewCheckoutService(gateway, zap.NewNop())
	store := cartWithItems(t)

	result, err := svc.CheckoutCart(context.Background(), store,
		CustomerInfo{Name: "Lisandro", Email: "lisandro@example.com"},
		AddressInfo{City: "Mendoza", Province: "Mendoza"},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(555), result.OrderID)
	assert.Equal(t, "https://pay.example.com/555", result.PaymentURL)

	require.NotNil(t, gateway.lastOrder)
	payload := *gateway.lastOrder
	assert.Equal(t, "ARS", payload.Currency)
	assert.Equal(t, "pending", payload.PaymentStatus)
	assert.Equal(t, "Lisandro", payload.Customer.Name)
	assert.Equal(t, "Mendoza", payload.ShippingAddress.City)

	require.Len(t, payload.Products, 2)
	assert.Equal(t, int64(7), payload.Products[0].VariantID)
	assert.Equal(t, 2, payload.Products[0].Quantity)
	assert.Equal(t, "100.50", payload.Products[0].Price)
	assert.Equal(t, int64(9), payload.Products[1].VariantID)

	assert.Empty(t, store.Items(), "confirmed order empties the cart")
}

func TestCheckoutCart_EmptyCartRejected(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewCheckoutService(gateway, zap.NewNop())
	repo := &memoryCartRepo{snapshots: make(map[uuid.UUID][]domain.LineItem)}
	store := cart.NewStore(uuid.New(), repo, zap.NewNop())

	_, err := svc.CheckoutCart(context.Background(), store, CustomerInfo{}, AddressInfo{})

	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidArgument)
	assert.True(t, ok, "expected ErrInvalidArgument, got %T", err)
	assert.Nil(t, gateway.lastOrder)
}

func TestCheckoutCart_PlatformFailureKeepsCart(t *testing.T) {
	gateway := &fakeGateway{orderErr: fmt.Errorf("upstream down")}
	svc := NewCheckoutService(gateway, zap.NewNop())
	store := cartWithItems(t)

	_, err := svc.CheckoutCart(context.Background(), store, CustomerInfo{}, AddressInfo{})

	require.Error(t, err)
	assert.Len(t, store.Items(), 2, "failed checkout must not clear the cart")
}

func TestCheckoutCart_DefaultsFillMissingBuyerData(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewCheckoutService(gateway, zap.NewNop())
	store := cartWithItems(t)

	_, err := svc.CheckoutCart(context.Background(), store, CustomerInfo{}, AddressInfo{})
	require.NoError(t, err)

	payload := *gateway.lastOrder
	assert.Equal(t, "Cliente Web", payload.Customer.Name)
	assert.Equal(t, "AR", payload.ShippingAddress.Country)
	assert.Equal(t, "5500", payload.ShippingAddress.Zipcode)
}

func TestHostedCheckout_KeepsCart(t *testing.T) {
	gateway := &fakeGateway{}
	svc := NewCheckoutService(gateway, zap.NewNop())
	store := cartWithItems(t)

	checkout, err := svc.HostedCheckout(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.example.com/chk-1", checkout.CheckoutURL)
	require.Len(t, gateway.lastCheckout, 2)
	assert.Equal(t, int64(7), gateway.lastCheckout[0].VariantID)
	assert.Equal(t, 2, gateway.lastCheckout[0].Quantity)
	assert.Len(t, store.Items(), 2, "hosted checkout does not clear the cart")
}
