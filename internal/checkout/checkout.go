// Package checkout computes order totals and places orders. Validation
// failures block the action locally before any backend call; the cart is
// cleared only after the backend confirms placement.
package checkout

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/models"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/session"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// API is the slice of the backend client checkout uses.
type API interface {
	PlaceOrder(ctx context.Context, req shopapi.PlaceOrderRequest) error
	CreateRazorpayOrder(ctx context.Context, req shopapi.PlaceOrderRequest) (*shopapi.GatewayOrder, error)
	VerifyRazorpay(ctx context.Context, gatewayOrderID string) error
}

// Totals is the checkout price breakdown.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Original    float64 `json:"original"`
	Savings     float64 `json:"savings"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// Service wires the cart, session and backend into the checkout flow.
type Service struct {
	cart        *store.Cart
	catalog     *store.Catalog
	sessions    *session.Manager
	api         API
	notifier    notify.Notifier
	validate    *validator.Validate
	deliveryFee float64
}

// NewService constructs a checkout service with the configured flat delivery fee.
func NewService(cart *store.Cart, catalog *store.Catalog, sessions *session.Manager, api API, notifier notify.Notifier, deliveryFee float64) *Service {
	return &Service{
		cart:        cart,
		catalog:     catalog,
		sessions:    sessions,
		api:         api,
		notifier:    notifier,
		validate:    validator.New(),
		deliveryFee: deliveryFee,
	}
}

// Totals returns the current price breakdown. The delivery fee applies only
// to a non-empty cart: a zero cart amount yields a zero total, not the bare
// fee. This is not a free-shipping threshold and must stay asymmetric.
func (s *Service) Totals() Totals {
	subtotal := s.cart.Amount()
	t := Totals{
		Subtotal: subtotal,
		Original: s.cart.OriginalAmount(),
		Savings:  s.cart.Savings(),
	}
	if subtotal > 0 {
		t.DeliveryFee = s.deliveryFee
		t.Total = subtotal + s.deliveryFee
	}
	return t
}

// PlaceOrder validates the address and places the order. For COD the cart is
// cleared on success. For Razorpay a gateway order is returned and the cart
// survives until ConfirmPayment; the hosted modal is the caller's concern.
func (s *Service) PlaceOrder(ctx context.Context, addr models.Address, method models.PaymentMethod) (*shopapi.GatewayOrder, error) {
	if err := s.validate.Struct(addr); err != nil {
		s.notifier.Notify(notify.LevelError, "Please fill in all delivery details")
		return nil, fmt.Errorf("%w: %v", utils.ErrValidationFailed, err)
	}
	if s.sessions.Token() == "" {
		return nil, utils.ErrLoginRequired
	}

	items := s.orderItems()
	if len(items) == 0 {
		s.notifier.Notify(notify.LevelError, "Your cart is empty")
		return nil, utils.ErrCartEmpty
	}

	req := shopapi.PlaceOrderRequest{
		Items:   items,
		Amount:  s.Totals().Total,
		Address: addr,
	}

	switch method {
	case models.PaymentRazorpay:
		order, err := s.api.CreateRazorpayOrder(ctx, req)
		if err != nil {
			s.notifier.Notify(notify.LevelError, "Could not start the payment")
			return nil, err
		}
		return order, nil
	default:
		if err := s.api.PlaceOrder(ctx, req); err != nil {
			s.notifier.Notify(notify.LevelError, "Could not place your order")
			return nil, err
		}
		s.cart.Clear()
		s.notifier.Notify(notify.LevelSuccess, "Order placed")
		log.Info().Int("items", len(items)).Float64("amount", req.Amount).Msg("order placed")
		return nil, nil
	}
}

// ConfirmPayment verifies a completed gateway payment and clears the cart.
func (s *Service) ConfirmPayment(ctx context.Context, gatewayOrderID string) error {
	if gatewayOrderID == "" {
		return utils.ErrInvalidRequest
	}
	if err := s.api.VerifyRazorpay(ctx, gatewayOrderID); err != nil {
		s.notifier.Notify(notify.LevelError, "Payment verification failed")
		return err
	}
	s.cart.Clear()
	s.notifier.Notify(notify.LevelSuccess, "Payment confirmed, order placed")
	return nil
}

// orderItems snapshots the cart into order line items, freezing each entry's
// resolved unit price and discount at purchase time.
func (s *Service) orderItems() []models.OrderItem {
	lines := s.cart.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		product, ok := s.catalog.Get(l.ProductID)
		if !ok {
			continue
		}
		sel := store.ParseSelector(l.Selector)
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     store.UnitPrice(&product, sel),
			Discount:  store.DiscountPercent(&product, sel),
			Quantity:  l.Quantity,
			Selector:  l.Selector,
			Image:     l.Image,
		})
	}
	return items
}
