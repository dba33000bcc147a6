package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
)

type stubCartStore struct {
	cart        *cart.ShoppingCart
	deleteErr   error
	deleteCalls int
}

func (s *stubCartStore) Load(_ context.Context, _ string) (*cart.ShoppingCart, error) {
	if s.cart == nil {
		return cart.New(), nil
	}
	return s.cart, nil
}

func (s *stubCartStore) Save(_ context.Context, _ string, shoppingCart *cart.ShoppingCart) error {
	s.cart = shoppingCart
	return nil
}

func (s *stubCartStore) Delete(_ context.Context, _ string) error {
	s.deleteCalls++
	return s.deleteErr
}

type stubOrderRepo struct {
	stored *order.CustomerOrder
}

func (r *stubOrderRepo) Commit(_ context.Context, customerOrder *order.CustomerOrder) (uint, error) {
	customerOrder.ID = 1
	r.stored = customerOrder
	return 1, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uint) (*order.CustomerOrder, error) {
	if r.stored == nil || r.stored.ID != id {
		return nil, order.ErrNotFound
	}
	return r.stored, nil
}

type stubProductRepo struct{}

func (stubProductRepo) Find(_ context.Context, id uint) (*catalog.Product, error) {
	return &catalog.Product{ID: id, Name: "milk", Price: decimal.RequireFromString("1.70")}, nil
}

func (stubProductRepo) FindForCategory(_ context.Context, _ uint) ([]catalog.Product, error) {
	return nil, nil
}

func checkoutConfig() *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			DeliverySurcharge: decimal.RequireFromString("3.50"),
		},
	}
}

func checkoutRouter(store *stubCartStore, log *logrus.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := order.NewManager(&stubOrderRepo{}, stubProductRepo{}, log)
	handler := handlers.NewCheckoutHandler(store, manager, checkoutConfig(), log)

	router := gin.New()
	router.POST("/checkout/purchase", handler.Purchase)
	return router
}

func purchaseRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkout/purchase", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const validPurchaseBody = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": "212 555 0187",
	"address": "12 Analytical Way",
	"city_region": "London",
	"card_number": "4111111111111111"
}`

func TestPurchase_FailedCartDeleteIsLoggedNotFatal(t *testing.T) {
	filled := cart.New()
	filled.AddItem(&catalog.Product{ID: 1, Name: "milk", Price: decimal.RequireFromString("1.70")})

	store := &stubCartStore{cart: filled, deleteErr: fmt.Errorf("connection refused")}
	log, hook := test.NewNullLogger()
	router := checkoutRouter(store, log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, purchaseRequest(validPurchaseBody))

	// The order is durable, so a failed cart cleanup must not fail the
	// purchase.
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "order_id")
	assert.Equal(t, 1, store.deleteCalls)

	// The failure is diagnosable from the log stream.
	logged := false
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["order_id"] != nil {
			logged = true
		}
	}
	assert.True(t, logged, "failed cart delete must be logged")
}

func TestPurchase_ValidationFailureReportsEveryField(t *testing.T) {
	store := &stubCartStore{}
	log, _ := test.NewNullLogger()
	router := checkoutRouter(store, log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, purchaseRequest(`{
		"name": "",
		"email": "bad",
		"phone": "x",
		"address": "",
		"city_region": "",
		"card_number": "12"
	}`))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "field_errors")
	assert.Equal(t, 0, store.deleteCalls)
}

func TestPurchase_EmptyCartRejected(t *testing.T) {
	store := &stubCartStore{}
	log, _ := test.NewNullLogger()
	router := checkoutRouter(store, log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, purchaseRequest(validPurchaseBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.deleteCalls)
}
