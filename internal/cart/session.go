package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchcairo/storefront-backend/pkg/db/models"
	"github.com/stitchcairo/storefront-backend/pkg/enums"
	pkgerrors "github.com/stitchcairo/storefront-backend/pkg/errors"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

// CatalogReader supplies the live product and per-size stock view consulted
// before every stock-sensitive mutation. Stock is re-read here at decision
// time, never cached on the cart line.
type CatalogReader interface {
	GetProductWithStock(ctx context.Context, productID uuid.UUID) (*models.Product, map[enums.Size]int, error)
}

// Session owns one cart. The reducer stays pure; the session performs the
// stock checks on its behalf and refuses mutations that would exceed the
// available quantity known at check time.
type Session struct {
	token     string
	mu        sync.Mutex
	state     State
	catalog   CatalogReader
	touchedAt time.Time
}

// Token returns the client-held session identifier.
func (s *Session) Token() string {
	return s.token
}

// State returns a copy of the current cart state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Line, len(s.state.Items))
	copy(items, s.state.Items)
	if len(items) == 0 {
		items = nil
	}
	return State{Items: items, Total: s.state.Total}
}

// AddItem increments the (product, size) line by one after checking the live
// stock level. The product's effective price is captured at dispatch time.
func (s *Session) AddItem(ctx context.Context, productID uuid.UUID, size enums.Size) error {
	if !size.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid size %q", string(size)))
	}

	product, stock, err := s.catalog.GetProductWithStock(ctx, productID)
	if err != nil {
		return err
	}
	if !product.OffersSize(size) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size %s is not offered for this product", size))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available := stock[size]
	requested := s.state.Quantity(productID, size) + 1
	if requested > available {
		return stockError(available, size)
	}

	s.state = Reduce(s.state, AddItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		Size:        size,
		UnitPrice:   product.EffectivePrice(),
	})
	s.touchedAt = time.Now()
	return nil
}

// SetQuantity replaces the line's quantity after checking the live stock
// level. Zero or negative quantity removes the line without a stock check.
func (s *Session) SetQuantity(ctx context.Context, productID uuid.UUID, size enums.Size, quantity int) error {
	if quantity <= 0 {
		s.RemoveItem(productID, size)
		return nil
	}

	_, stock, err := s.catalog.GetProductWithStock(ctx, productID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	available := stock[size]
	if quantity > available {
		return stockError(available, size)
	}

	s.state = Reduce(s.state, SetQuantity{ProductID: productID, Size: size, Quantity: quantity})
	s.touchedAt = time.Now()
	return nil
}

// RemoveItem drops the (product, size) line. Absent lines are a no-op.
func (s *Session) RemoveItem(productID uuid.UUID, size enums.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, RemoveItem{ProductID: productID, Size: size})
	s.touchedAt = time.Now()
}

// Clear empties the cart.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, Clear{})
	s.touchedAt = time.Now()
}

func stockError(available int, size enums.Size) error {
	return pkgerrors.New(pkgerrors.CodeStock,
		fmt.Sprintf("Only %d items available in size %s", available, size)).
		WithDetails(map[string]any{"available": available, "size": string(size)})
}

// Summary is the checkout view of a cart. The shipping fee is added only to
// the payable total; the order ceiling elsewhere is checked against Subtotal.
type Summary struct {
	Items        []Line          `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingFee  decimal.Decimal `json:"shipping_fee"`
	PayableTotal decimal.Decimal `json:"payable_total"`
}

// Summarize builds the display totals for the current cart.
func (s *Session) Summarize(shippingFee decimal.Decimal) Summary {
	state := s.State()
	return Summary{
		Items:        state.Items,
		Subtotal:     state.Total,
		ShippingFee:  shippingFee,
		PayableTotal: state.Total.Add(shippingFee),
	}
}

// Manager is the session registry. Sessions are keyed by an opaque uuid token
// held by the client and expire after the configured idle TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  CatalogReader
	ttl      time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

// NewManager builds the registry and validates its dependencies.
func NewManager(catalog CatalogReader, ttl time.Duration, logg *logger.Logger) (*Manager, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		ttl:      ttl,
		logger:   logg,
		now:      time.Now,
	}, nil
}

// Create registers an empty cart and returns its session.
func (m *Manager) Create(ctx context.Context) *Session {
	session := &Session{
		token:     uuid.NewString(),
		state:     EmptyState(),
		catalog:   m.catalog,
		touchedAt: m.now(),
	}

	m.mu.Lock()
	m.purgeExpiredLocked()
	m.sessions[session.token] = session
	m.mu.Unlock()

	m.logger.Info(m.logger.WithCartToken(ctx, session.token), "cart session created")
	return session
}

// Get resolves a session by token.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked()
	session, ok := m.sessions[token]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart session not found")
	}
	return session, nil
}

// Delete discards a session. Unknown tokens are a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) purgeExpiredLocked() {
	cutoff := m.now().Add(-m.ttl)
	for token, session := range m.sessions {
		session.mu.Lock()
		expired := session.touchedAt.Before(cutoff)
		session.mu.Unlock()
		if expired {
			delete(m.sessions, token)
		}
	}
}
