package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/cart"
	"github.com/dsemenov/storefront/internal/cartstore"
	"github.com/dsemenov/storefront/internal/checkout"
	"github.com/dsemenov/storefront/internal/models"
)

type fakeProfiles struct {
	details map[uint]models.UserDetail
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uint) (*models.UserDetail, error) {
	d, ok := f.details[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

// recordingOrders mimics the real repo: prices come from its catalog map at
// write time, an unknown product fails the whole write.
type recordingOrders struct {
	prices   map[int]float64
	failWith error
	order    *models.Order
	lines    []models.OrderLine
	calls    int
}

func (r *recordingOrders) CreateOrderWithLines(_ context.Context, order *models.Order, lines []models.OrderLine) (uint, error) {
	r.calls++
	if r.failWith != nil {
		return 0, r.failWith
	}
	priced := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		price, ok := r.prices[l.ProductID]
		if !ok {
			return 0, fmt.Errorf("product %d: %w", l.ProductID, gorm.ErrRecordNotFound)
		}
		l.ProductPrice = price
		priced[i] = l
	}
	order.ID = 101
	r.order = order
	r.lines = priced
	return order.ID, nil
}

type env struct {
	svc    *checkout.Service
	store  *cartstore.MemoryStore
	orders *recordingOrders
}

func newTestEnv() *env {
	store := cartstore.NewMemoryStore()
	orderStore := &recordingOrders{prices: map[int]float64{7: 19.99, 12: 5.50}}
	svc := &checkout.Service{
		Store: store,
		Profiles: &fakeProfiles{details: map[uint]models.UserDetail{
			1: {UserID: 1, FirstName: "Ada", LastName: "Lovelace", City: "London", State: "LDN", Zip: "12345"},
		}},
		Orders: orderStore,
	}
	return &env{svc: svc, store: store, orders: orderStore}
}

func TestSubmitOrder_CreatesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{7: {ProductID: 7, Quantity: 3}}))

	orderID, err := e.svc.SubmitOrder(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(101), orderID)

	require.NotNil(t, e.orders.order)
	assert.Equal(t, uint(1), e.orders.order.UserID)
	assert.Equal(t, "Ada Lovelace", e.orders.order.ShipToName)
	assert.Equal(t, "London", e.orders.order.ShipCity)
	assert.Equal(t, "LDN", e.orders.order.ShipState)
	assert.Equal(t, "12345", e.orders.order.ShipZip)
	assert.WithinDuration(t, time.Now(), e.orders.order.OrderDate, 5*time.Second)

	require.Len(t, e.orders.lines, 1)
	assert.Equal(t, 7, e.orders.lines[0].ProductID)
	assert.Equal(t, 3, e.orders.lines[0].Quantity)
	assert.Equal(t, 19.99, e.orders.lines[0].ProductPrice)

	after, err := e.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestSubmitOrder_PriceResolvedAtWrite(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{7: {ProductID: 7, Quantity: 1}}))

	// price changed between add-to-cart and checkout, the order store is the
	// one that resolves it
	e.orders.prices[7] = 42.00

	_, err := e.svc.SubmitOrder(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, 42.00, e.orders.lines[0].ProductPrice)
}

func TestSubmitOrder_OneLinePerCartEntry(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{
		7:  {ProductID: 7, Quantity: 2},
		12: {ProductID: 12, Quantity: 4},
	}))

	_, err := e.svc.SubmitOrder(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, e.orders.lines, 2)
	assert.Equal(t, 7, e.orders.lines[0].ProductID)
	assert.Equal(t, 12, e.orders.lines[1].ProductID)
}

func TestSubmitOrder_EmptyCartRejected(t *testing.T) {
	t.Parallel()

	e := newTestEnv()

	_, err := e.svc.SubmitOrder(context.Background(), "s1", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Zero(t, e.orders.calls)
}

func TestSubmitOrder_StorageFailureKeepsCart(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{7: {ProductID: 7, Quantity: 3}}))
	e.orders.failWith = errors.New("connection reset")

	_, err := e.svc.SubmitOrder(ctx, "s1", 1)
	require.Error(t, err)

	after, err := e.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{7: {ProductID: 7, Quantity: 3}}, after)
}

func TestSubmitOrder_MissingProfile(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{7: {ProductID: 7, Quantity: 3}}))

	_, err := e.svc.SubmitOrder(ctx, "s1", 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrNotFound)
	assert.Zero(t, e.orders.calls)

	after, err := e.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, cart.Cart{7: {ProductID: 7, Quantity: 3}}, after)
}

func TestSubmitOrder_VanishedProductAborts(t *testing.T) {
	t.Parallel()

	e := newTestEnv()
	ctx := context.Background()

	require.NoError(t, e.store.Save(ctx, "s1", cart.Cart{999: {ProductID: 999, Quantity: 1}}))

	_, err := e.svc.SubmitOrder(ctx, "s1", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, checkout.ErrNotFound)

	after, err := e.store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, after, 1)
}
