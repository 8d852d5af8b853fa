package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/internal/cart"
	"github.com/stitchcairo/storefront-backend/pkg/config"
	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/metrics"
	"github.com/stitchcairo/storefront-backend/pkg/types"
)

// Customer-facing failure messages for the submission pipeline.
const (
	msgTooManyOrders = "Too many orders. Please try again later."
	msgOrderFailed   = "Failed to place order. Please try again."
)

// OrderDraft is the submission payload: the customer fields plus the cart
// session the items come from.
type OrderDraft struct {
	CartToken       string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	AdditionalInfo  *string
}

type sessionStore interface {
	Get(token string) (*cart.Session, error)
}

// Notifier delivers the order confirmation. Failures are logged and counted
// only; they never affect the order.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// Service runs the order submission pipeline.
type Service interface {
	SubmitOrder(ctx context.Context, draft OrderDraft) (*models.Order, error)
}

type service struct {
	repo     Repository
	sessions sessionStore
	notifier Notifier
	limiter  *rateLimiter
	cfg      config.CheckoutConfig
	metrics  *metrics.CheckoutMetrics
	logger   *logger.Logger
	detach   func(fn func())
}

// NewService wires the pipeline and validates its dependencies. The metrics
// sink may be nil.
func NewService(
	repo Repository,
	sessions sessionStore,
	notifier Notifier,
	cfg config.CheckoutConfig,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	limiter, err := newRateLimiter(repo, cfg.RateLimitWindow, cfg.RateLimitMax)
	if err != nil {
		return nil, err
	}

	return &service{
		repo:     repo,
		sessions: sessions,
		notifier: notifier,
		limiter:  limiter,
		cfg:      cfg,
		metrics:  checkoutMetrics,
		logger:   logg,
		detach:   func(fn func()) { go fn() },
	}, nil
}

// SubmitOrder runs the pipeline strictly in sequence: rate limit, validation,
// persist, detached notify, clear. The cart is cleared exactly once and only
// after the order is durably recorded; the notification neither delays nor
// fails the result.
func (s *service) SubmitOrder(ctx context.Context, draft OrderDraft) (*models.Order, error) {
	start := time.Now()
	phone := strings.TrimSpace(draft.CustomerPhone)
	logCtx := s.logger.WithCustomerPhone(ctx, phone)

	session, err := s.sessions.Get(draft.CartToken)
	if err != nil {
		s.metrics.IncRejected("unknown_session")
		return nil, err
	}

	allowed, err := s.limiter.Allow(ctx, phone)
	if err != nil {
		s.logger.Error(logCtx, "rate limit check failed", err)
		s.metrics.IncRejected("rate_limit_check_failed")
		s.metrics.ObserveDuration("error", time.Since(start))
		return nil, err
	}
	if !allowed {
		s.metrics.IncRejected("rate_limited")
		s.metrics.ObserveDuration("rejected", time.Since(start))
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, msgTooManyOrders)
	}

	items := orderItemsFromCart(session.State())
	maxAmount := decimal.NewFromInt(int64(s.cfg.MaxOrderAmountEGP))
	if err := ValidateOrder(draft.CustomerName, phone, draft.CustomerAddress, items, maxAmount); err != nil {
		s.metrics.IncRejected("validation")
		s.metrics.ObserveDuration("rejected", time.Since(start))
		return nil, err
	}

	order := &models.Order{
		CustomerName:    strings.TrimSpace(draft.CustomerName),
		CustomerPhone:   phone,
		CustomerAddress: strings.TrimSpace(draft.CustomerAddress),
		AdditionalInfo:  draft.AdditionalInfo,
		Items:           items,
		TotalAmount:     items.Subtotal(),
		Status:          enums.OrderStatusPending,
	}

	persisted, err := s.repo.InsertOrder(ctx, order)
	if err != nil {
		s.logger.Error(logCtx, "order insert failed", err)
		s.metrics.IncRejected("persistence")
		s.metrics.ObserveDuration("error", time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, msgOrderFailed)
	}

	orderCtx := s.logger.WithOrderID(logCtx, persisted.ID.String())
	s.notifyDetached(orderCtx, persisted)

	session.Clear()
	s.metrics.IncPlaced()
	s.metrics.ObserveDuration("success", time.Since(start))
	s.logger.Info(orderCtx, "order placed")
	return persisted, nil
}

// notifyDetached sends the confirmation without blocking the caller. The
// parent request context may end before the send completes, so cancellation
// is stripped off.
func (s *service) notifyDetached(ctx context.Context, order *models.Order) {
	sendCtx := context.WithoutCancel(ctx)
	s.detach(func() {
		if err := s.notifier.SendOrderConfirmation(sendCtx, order); err != nil {
			s.logger.Error(sendCtx, "order notification failed", err)
			s.metrics.IncNotifyFailure()
		}
	})
}

func orderItemsFromCart(state cart.State) types.OrderItems {
	items := make(types.OrderItems, 0, len(state.Items))
	for _, line := range state.Items {
		items = append(items, types.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}
	return items
}
