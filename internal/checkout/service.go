package checkout

import (
	"context"
	"errors"
	"time"

	"myshop-be/internal/cart"
	"myshop-be/internal/logger"
	"myshop-be/internal/metrics"
	"myshop-be/internal/notification"
	"myshop-be/internal/order"
	"myshop-be/internal/payment"
	"myshop-be/internal/user"
	"myshop-be/internal/utils"

	"go.uber.org/zap"
)

type AccountReader interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

type OrderWriter interface {
	CreateOrderTx(ctx context.Context, userID uint, items []order.LineItem, createdAt time.Time) (*order.Order, error)
}

// Notifier must not block the caller.
type Notifier interface {
	OrderConfirmed(ctx context.Context, to notification.Recipient, o *order.Order)
}

type URLs struct {
	Success string
	Cancel  string
}

// Service drives one checkout attempt. Initiate talks to the gateway and
// writes nothing; Finalize writes the order and never calls the gateway.
// The returned Attempt is never nil.
type Service interface {
	Initiate(ctx context.Context, c *cart.Cart) (*Attempt, error)
	Finalize(ctx context.Context, c *cart.Cart) (*Attempt, error)
}

type service struct {
	accounts AccountReader
	orders   OrderWriter
	gateway  payment.Gateway
	notifier Notifier
	metrics  *metrics.ServerMetrics
	urls     URLs
	now      func() time.Time
}

func NewService(
	accounts AccountReader,
	orders OrderWriter,
	gateway payment.Gateway,
	notifier Notifier,
	m *metrics.ServerMetrics,
	urls URLs,
) Service {
	return &service{
		accounts: accounts,
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		metrics:  m,
		urls:     urls,
		now:      time.Now,
	}
}

func (s *service) Initiate(ctx context.Context, c *cart.Cart) (*Attempt, error) {
	a := &Attempt{Step: StepInitiate}
	a.enter(StateCartReview)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "InitiateCheckout"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return s.reject(a, ErrUnauthenticated)
	}
	log = log.With(zap.Uint("user_id", userID))

	a.enter(StatePreconditionCheck)

	u, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to load account", zap.Error(err))
		return s.fail(a, StateOrderFailed, err)
	}

	if missing := u.MissingProfileFields(); len(missing) > 0 {
		log.Info("checkout rejected: profile incomplete", zap.Strings("missing", missing))
		return s.reject(a, &ProfileIncompleteError{Missing: missing})
	}

	if c.IsEmpty() {
		log.Info("checkout rejected: empty cart")
		return s.reject(a, ErrEmptyCart)
	}

	lines := c.Contents()
	items := gatewayLineItems(lines)
	if skipped := len(lines) - len(items); skipped > 0 {
		log.Warn("skipped invalid cart lines", zap.Int("skipped", skipped))
	}
	if len(items) == 0 {
		log.Info("checkout rejected: no valid items")
		return s.reject(a, ErrNoValidItems)
	}

	a.enter(StateGatewayPending)

	sess, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		LineItems:     items,
		SuccessURL:    s.urls.Success,
		CancelURL:     s.urls.Cancel,
		CustomerEmail: u.Email,
	})
	if err != nil {
		var gwErr *GatewayError
		if !errors.As(err, &gwErr) {
			err = &GatewayError{Message: err.Error(), Err: err}
		}
		log.Error("payment session not created", zap.Error(err))
		return s.fail(a, StateGatewayError, err)
	}

	a.Session = sess
	log.Info("payment session created",
		zap.String("session_id", sess.ID),
		zap.Int("line_items", len(items)),
	)
	s.metrics.ObserveCheckout(string(a.Step), string(a.State()))
	return a, nil
}

// Finalize runs on the gateway's success redirect. The cart is the only
// guard against a replay, so an empty cart ends the attempt before any write.
func (s *service) Finalize(ctx context.Context, c *cart.Cart) (*Attempt, error) {
	a := &Attempt{Step: StepFinalize}
	a.enter(StateCartReview)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FinalizeCheckout"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return s.reject(a, ErrUnauthenticated)
	}
	log = log.With(zap.Uint("user_id", userID))

	if c.IsEmpty() {
		log.Info("finalize skipped: empty cart")
		return s.reject(a, ErrEmptyCart)
	}

	items := orderLineItems(c.Contents())
	if len(items) == 0 {
		log.Info("finalize rejected: no valid items")
		return s.reject(a, ErrNoValidItems)
	}

	a.enter(StateGatewayConfirmed)

	u, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		log.Error("failed to load account", zap.Error(err))
		return s.fail(a, StateOrderFailed, err)
	}

	o, err := s.orders.CreateOrderTx(ctx, userID, items, s.now())
	if err != nil {
		log.Error("order not committed", zap.Error(err))
		return s.fail(a, StateOrderFailed, err)
	}

	a.Order = o
	a.enter(StateOrderCommitted)
	c.Clear()

	log.Info("order committed",
		zap.Uint("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("items", len(o.Items)),
	)

	s.notifier.OrderConfirmed(ctx, notification.Recipient{Name: u.Name, Email: u.Email}, o)
	a.enter(StateNotified)

	s.metrics.ObserveCheckout(string(a.Step), string(a.State()))
	return a, nil
}

func (s *service) reject(a *Attempt, err error) (*Attempt, error) {
	return s.fail(a, StateOf(err), err)
}

func (s *service) fail(a *Attempt, st State, err error) (*Attempt, error) {
	a.enter(st)
	s.metrics.ObserveCheckout(string(a.Step), string(st))
	return a, err
}
