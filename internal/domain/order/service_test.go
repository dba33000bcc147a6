package order_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/validate"
)

// fakeOrderRepo is an in-memory order.Repository. Commit stores the whole
// order under one lock, mirroring the all-or-nothing contract.
type fakeOrderRepo struct {
	mu         sync.Mutex
	nextID     uint
	orders     map[uint]order.CustomerOrder
	failCommit bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]order.CustomerOrder)}
}

func (r *fakeOrderRepo) Commit(_ context.Context, customerOrder *order.CustomerOrder) (uint, error) {
	if r.failCommit {
		return 0, fmt.Errorf("storage unavailable")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	customerOrder.ID = r.nextID
	customerOrder.Customer.ID = r.nextID
	customerOrder.CustomerID = customerOrder.Customer.ID
	for i := range customerOrder.Items {
		customerOrder.Items[i].OrderID = customerOrder.ID
	}

	stored := *customerOrder
	stored.Items = make([]order.OrderedProduct, len(customerOrder.Items))
	copy(stored.Items, customerOrder.Items)
	r.orders[customerOrder.ID] = stored

	return customerOrder.ID, nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.CustomerOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}

	found := stored
	found.Items = make([]order.OrderedProduct, len(stored.Items))
	copy(found.Items, stored.Items)
	return &found, nil
}

// fakeProductRepo is an in-memory catalog.ProductRepository
type fakeProductRepo struct {
	products map[uint]catalog.Product
}

func (r *fakeProductRepo) Find(_ context.Context, id uint) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &product, nil
}

func (r *fakeProductRepo) FindForCategory(_ context.Context, _ uint) ([]catalog.Product, error) {
	return nil, nil
}

func testProducts() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]catalog.Product{
		1: {ID: 1, Name: "milk", Price: decimal.RequireFromString("19.99")},
		2: {ID: 2, Name: "tea", Price: decimal.RequireFromString("5.00")},
	}}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testForm() validate.CheckoutForm {
	return validate.CheckoutForm{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Phone:      "212 555 0187",
		Address:    "12 Analytical Way",
		CityRegion: "London",
		CardNumber: "4111111111111111",
	}
}

func filledCart(t *testing.T, products *fakeProductRepo) *cart.ShoppingCart {
	t.Helper()

	milk, err := products.Find(context.Background(), 1)
	require.NoError(t, err)
	tea, err := products.Find(context.Background(), 2)
	require.NoError(t, err)

	c := cart.New()
	c.AddItem(milk)
	c.AddItem(milk)
	c.AddItem(tea)
	return c
}

var surcharge = decimal.RequireFromString("3.50")

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	repo := newFakeOrderRepo()
	manager := order.NewManager(repo, testProducts(), quietLogger())

	id, err := manager.PlaceOrder(context.Background(), testForm(), cart.New(), surcharge)

	require.ErrorIs(t, err, order.ErrEmptyCart)
	assert.Zero(t, id)
	assert.Empty(t, repo.orders)
}

func TestPlaceOrder_NilCartRejected(t *testing.T) {
	manager := order.NewManager(newFakeOrderRepo(), testProducts(), quietLogger())

	_, err := manager.PlaceOrder(context.Background(), testForm(), nil, surcharge)

	require.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestPlaceOrder_CommitsSnapshot(t *testing.T) {
	repo := newFakeOrderRepo()
	products := testProducts()
	manager := order.NewManager(repo, products, quietLogger())

	shoppingCart := filledCart(t, products)

	id, err := manager.PlaceOrder(context.Background(), testForm(), shoppingCart, surcharge)
	require.NoError(t, err)
	require.NotZero(t, id)

	stored, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	// 19.99*2 + 5.00 + 3.50 = 48.48
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("48.48")), "got %s", stored.Amount)
	assert.True(t, stored.SurchargeAmount.Equal(surcharge))
	assert.NotEmpty(t, stored.OrderNumber)

	require.Len(t, stored.Items, 2)
	assert.Equal(t, "milk", stored.Items[0].Name)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.True(t, stored.Items[0].TotalPrice.Equal(decimal.RequireFromString("39.98")))
	assert.Equal(t, "tea", stored.Items[1].Name)
	assert.Equal(t, 1, stored.Items[1].Quantity)

	assert.Equal(t, "Ada Lovelace", stored.Customer.Name)
	assert.Equal(t, "London", stored.Customer.CityRegion)
}

func TestPlaceOrder_CommitFailureKeepsCart(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failCommit = true
	products := testProducts()
	manager := order.NewManager(repo, products, quietLogger())

	shoppingCart := filledCart(t, products)

	id, err := manager.PlaceOrder(context.Background(), testForm(), shoppingCart, surcharge)

	require.ErrorIs(t, err, order.ErrCommitFailed)
	assert.Zero(t, id)
	assert.Empty(t, repo.orders)

	// The cart is untouched so the visitor can retry.
	assert.Equal(t, 3, shoppingCart.TotalQuantity())
}

func TestPlaceOrder_ConcurrentSessionsAreIsolated(t *testing.T) {
	repo := newFakeOrderRepo()
	products := testProducts()
	manager := order.NewManager(repo, products, quietLogger())

	milk, err := products.Find(context.Background(), 1)
	require.NoError(t, err)
	tea, err := products.Find(context.Background(), 2)
	require.NoError(t, err)

	cartA := cart.New()
	for i := 0; i < 5; i++ {
		cartA.AddItem(milk)
	}

	cartB := cart.New()
	cartB.AddItem(tea)

	var wg sync.WaitGroup
	ids := make([]uint, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ids[0], errs[0] = manager.PlaceOrder(context.Background(), testForm(), cartA, surcharge)
	}()
	go func() {
		defer wg.Done()
		ids[1], errs[1] = manager.PlaceOrder(context.Background(), testForm(), cartB, surcharge)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.NotEqual(t, ids[0], ids[1])

	orderA, err := repo.FindByID(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, orderA.Items, 1)
	assert.Equal(t, "milk", orderA.Items[0].Name)
	assert.Equal(t, 5, orderA.Items[0].Quantity)

	orderB, err := repo.FindByID(context.Background(), ids[1])
	require.NoError(t, err)
	require.Len(t, orderB.Items, 1)
	assert.Equal(t, "tea", orderB.Items[0].Name)
	assert.Equal(t, 1, orderB.Items[0].Quantity)
}

func TestGetOrderDetails(t *testing.T) {
	repo := newFakeOrderRepo()
	products := testProducts()
	manager := order.NewManager(repo, products, quietLogger())

	id, err := manager.PlaceOrder(context.Background(), testForm(), filledCart(t, products), surcharge)
	require.NoError(t, err)

	details, err := manager.GetOrderDetails(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", details.Customer.Name)
	assert.Equal(t, id, details.OrderRecord.ID)
	assert.Len(t, details.OrderedProducts, 2)
	assert.Len(t, details.Products, 2)
}

func TestGetOrderDetails_NotFound(t *testing.T) {
	manager := order.NewManager(newFakeOrderRepo(), testProducts(), quietLogger())

	_, err := manager.GetOrderDetails(context.Background(), 404)

	require.ErrorIs(t, err, order.ErrNotFound)
}

func TestGetOrderDetails_SkipsRetiredProducts(t *testing.T) {
	repo := newFakeOrderRepo()
	products := testProducts()
	manager := order.NewManager(repo, products, quietLogger())

	id, err := manager.PlaceOrder(context.Background(), testForm(), filledCart(t, products), surcharge)
	require.NoError(t, err)

	// Retire milk from the catalog after the order was committed.
	delete(products.products, 1)

	details, err := manager.GetOrderDetails(context.Background(), id)
	require.NoError(t, err)

	// Order lines keep the snapshot, only the live catalog lookup shrinks.
	assert.Len(t, details.OrderedProducts, 2)
	require.Len(t, details.Products, 1)
	assert.Equal(t, "tea", details.Products[0].Name)
}
