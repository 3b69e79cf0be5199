package checkout_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/peakform/storefront/internal/checkout"
	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/session"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// mockAPI is a testify mock of the order endpoints.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) PlaceOrder(_ context.Context, req shopapi.PlaceOrderRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *mockAPI) CreateRazorpayOrder(_ context.Context, req shopapi.PlaceOrderRequest) (*shopapi.GatewayOrder, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopapi.GatewayOrder), args.Error(1)
}

func (m *mockAPI) VerifyRazorpay(_ context.Context, gatewayOrderID string) error {
	args := m.Called(gatewayOrderID)
	return args.Error(0)
}

type fakeCatalogAPI struct{ products []models.Product }

func (f *fakeCatalogAPI) ListProducts(context.Context) ([]models.Product, error) {
	return f.products, nil
}
func (f *fakeCatalogAPI) ListBanners(context.Context) ([]models.Banner, error) { return nil, nil }
func (f *fakeCatalogAPI) ListMedia(context.Context) ([]models.MediaItem, error) {
	return nil, nil
}

type memSessionStore struct {
	token  string
	user   models.User
	stored bool
}

func (s *memSessionStore) LoadSession() (string, models.User, bool, error) {
	return s.token, s.user, s.stored, nil
}
func (s *memSessionStore) SaveSession(token string, user models.User) error {
	s.token, s.user, s.stored = token, user, true
	return nil
}
func (s *memSessionStore) ClearSession() error {
	s.token, s.user, s.stored = "", models.User{}, false
	return nil
}

type fixture struct {
	api      *mockAPI
	cart     *store.Cart
	sessions *session.Manager
	notices  *notify.Center
	svc      *checkout.Service
}

func newFixture(t *testing.T, loggedIn bool, products ...models.Product) *fixture {
	t.Helper()
	catalog := store.NewCatalog(&fakeCatalogAPI{products: products})
	require.NoError(t, catalog.Load(context.Background()))

	cart := store.NewCart(catalog)
	sessions := session.NewManager(&memSessionStore{})
	if loggedIn {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
		raw, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		require.NoError(t, sessions.Establish(raw, models.User{ID: "u1", Name: "Asha"}))
	}

	api := &mockAPI{}
	notices := notify.NewCenter(8)
	return &fixture{
		api:      api,
		cart:     cart,
		sessions: sessions,
		notices:  notices,
		svc:      checkout.NewService(cart, catalog, sessions, api, notices, 10),
	}
}

func validAddress() models.Address {
	return models.Address{
		FirstName: "Asha", LastName: "Rao", Email: "asha@example.com",
		Street: "12 MG Road", City: "Bengaluru", State: "KA",
		Zipcode: "560001", Country: "India", Phone: "9998887771",
	}
}

func TestTotalsEmptyCartWaivesDeliveryFee(t *testing.T) {
	f := newFixture(t, false)

	totals := f.svc.Totals()
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.DeliveryFee)
	assert.Equal(t, 0.0, totals.Total)
}

func TestTotalsNonEmptyCartAddsDeliveryFee(t *testing.T) {
	f := newFixture(t, false, models.Product{ID: "p1", Price: 499})
	f.cart.Add("p1", store.Selector{})

	totals := f.svc.Totals()
	assert.Equal(t, 499.0, totals.Subtotal)
	assert.Equal(t, 10.0, totals.DeliveryFee)
	assert.Equal(t, 509.0, totals.Total)
}

func TestTotalsSavings(t *testing.T) {
	f := newFixture(t, false, models.Product{ID: "p1", Price: 1000, Discount: 10})
	f.cart.Update("p1", store.Selector{}, 2)

	totals := f.svc.Totals()
	assert.Equal(t, 1800.0, totals.Subtotal)
	assert.Equal(t, 2000.0, totals.Original)
	assert.Equal(t, 200.0, totals.Savings)
	assert.Equal(t, 1810.0, totals.Total)
}

func TestPlaceOrderValidationBlocksLocally(t *testing.T) {
	f := newFixture(t, true, models.Product{ID: "p1", Price: 100})
	f.cart.Add("p1", store.Selector{})

	addr := validAddress()
	addr.Email = "nope"
	_, err := f.svc.PlaceOrder(context.Background(), addr, models.PaymentCOD)

	assert.ErrorIs(t, err, utils.ErrValidationFailed)
	f.api.AssertNotCalled(t, "PlaceOrder", mock.Anything)
	assert.Equal(t, 1, f.cart.Count(), "cart untouched on validation failure")
}

func TestPlaceOrderRequiresLogin(t *testing.T) {
	f := newFixture(t, false, models.Product{ID: "p1", Price: 100})
	f.cart.Add("p1", store.Selector{})

	_, err := f.svc.PlaceOrder(context.Background(), validAddress(), models.PaymentCOD)
	assert.ErrorIs(t, err, utils.ErrLoginRequired)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t, true)

	_, err := f.svc.PlaceOrder(context.Background(), validAddress(), models.PaymentCOD)
	assert.ErrorIs(t, err, utils.ErrCartEmpty)
}

func TestPlaceOrderCODClearsCart(t *testing.T) {
	f := newFixture(t, true, models.Product{ID: "p1", Name: "Whey", Price: 1000, Discount: 10})
	f.cart.Update("p1", store.Selector{}, 2)

	f.api.On("PlaceOrder", mock.MatchedBy(func(req shopapi.PlaceOrderRequest) bool {
		return req.Amount == 1810 && len(req.Items) == 1 &&
			req.Items[0].Quantity == 2 && req.Items[0].Price == 1000 && req.Items[0].Discount == 10
	})).Return(nil).Once()

	order, err := f.svc.PlaceOrder(context.Background(), validAddress(), models.PaymentCOD)

	require.NoError(t, err)
	assert.Nil(t, order)
	assert.Equal(t, 0, f.cart.Count())
	f.api.AssertExpectations(t)
}

func TestPlaceOrderBackendFailureKeepsCart(t *testing.T) {
	f := newFixture(t, true, models.Product{ID: "p1", Price: 100})
	f.cart.Add("p1", store.Selector{})

	f.api.On("PlaceOrder", mock.Anything).Return(&shopapi.APIError{Message: "out of stock"}).Once()

	_, err := f.svc.PlaceOrder(context.Background(), validAddress(), models.PaymentCOD)

	assert.Error(t, err)
	assert.Equal(t, 1, f.cart.Count(), "no rollback, no clear on failure")
}

func TestPlaceOrderRazorpayKeepsCartUntilConfirm(t *testing.T) {
	f := newFixture(t, true, models.Product{ID: "p1", Price: 500})
	f.cart.Add("p1", store.Selector{})

	gateway := &shopapi.GatewayOrder{ID: "order_123", Amount: 510, Currency: "INR"}
	f.api.On("CreateRazorpayOrder", mock.Anything).Return(gateway, nil).Once()
	f.api.On("VerifyRazorpay", "order_123").Return(nil).Once()

	order, err := f.svc.PlaceOrder(context.Background(), validAddress(), models.PaymentRazorpay)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 1, f.cart.Count(), "cart survives until payment confirmation")

	require.NoError(t, f.svc.ConfirmPayment(context.Background(), "order_123"))
	assert.Equal(t, 0, f.cart.Count())
	f.api.AssertExpectations(t)
}

func TestConfirmPaymentRejectsEmptyID(t *testing.T) {
	f := newFixture(t, true)
	assert.ErrorIs(t, f.svc.ConfirmPayment(context.Background(), ""), utils.ErrInvalidRequest)
}
