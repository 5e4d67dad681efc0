// Package order holds the server side state of open ordering views: one
// catalog snapshot and one cart per session.
package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"restaurant-ordering/cart"
	models "restaurant-ordering/model"
)

var (
	ErrSessionNotFound = errors.New("order session not found")
	ErrInvalidItem     = errors.New("item id required")
)

// CatalogLoader fetches the menu once per session.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]models.MenuItem, error)
}

// Session is one open ordering view. The catalog never changes after Open.
type Session struct {
	ID       string
	OpenedAt time.Time

	catalog *cart.Catalog

	mu       sync.Mutex
	cart     cart.Cart
	lastSeen time.Time
	closed   bool
}

// Snapshot is a consistent copy of a session's state.
type Snapshot struct {
	ID        string
	OpenedAt  time.Time
	Cart      cart.Cart
	Catalog   *cart.Catalog
	Lines     []models.OrderLine
	Total     decimal.Decimal
	ItemCount int
}

// Manager tracks open sessions. Transitions on one session are serialized by
// that session's lock; different sessions never contend.
type Manager struct {
	loader CatalogLoader
	ttl    time.Duration
	now    func() time.Time

	sessions sync.Map // map[string]*Session
}

func NewManager(loader CatalogLoader, ttl time.Duration) *Manager {
	return &Manager{loader: loader, ttl: ttl, now: time.Now}
}

// Open loads the catalog and starts a session with an empty cart.
func (m *Manager) Open(ctx context.Context) (Snapshot, error) {
	items, err := m.loader.LoadCatalog(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "load catalog")
	}
	now := m.now()
	s := &Session{
		ID:       uuid.NewString(),
		OpenedAt: now,
		catalog:  cart.NewCatalog(items),
		cart:     cart.New(),
		lastSeen: now,
	}
	snap := s.snapshot()
	m.sessions.Store(s.ID, s)
	return snap, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	var snap Snapshot
	err := m.with(id, func(s *Session) {
		snap = s.snapshot()
	})
	return snap, err
}

func (m *Manager) Add(id, itemID string) (Snapshot, error) {
	return m.apply(id, itemID, cart.Cart.Add)
}

func (m *Manager) Remove(id, itemID string) (Snapshot, error) {
	return m.apply(id, itemID, cart.Cart.Remove)
}

// Close discards the session and its cart. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	v, ok := m.sessions.LoadAndDelete(id)
	if !ok {
		return
	}
	s := v.(*Session)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Sweep discards sessions idle for longer than the ttl and reports how many
// went away.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	n := 0
	m.sessions.Range(func(key, value any) bool {
		s := value.(*Session)
		s.mu.Lock()
		expired := now.Sub(s.lastSeen) > m.ttl
		if expired {
			s.closed = true
		}
		s.mu.Unlock()
		if expired {
			m.sessions.Delete(key)
			n++
		}
		return true
	})
	return n
}

// Len counts open sessions.
func (m *Manager) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (m *Manager) apply(id, itemID string, op func(cart.Cart, string) cart.Cart) (Snapshot, error) {
	if strings.TrimSpace(itemID) == "" {
		return Snapshot{}, ErrInvalidItem
	}
	var snap Snapshot
	err := m.with(id, func(s *Session) {
		s.cart = op(s.cart, itemID)
		snap = s.snapshot()
	})
	return snap, err
}

// with runs fn under the session lock and refreshes its idle timer.
func (m *Manager) with(id string, fn func(s *Session)) error {
	v, ok := m.sessions.Load(id)
	if !ok {
		return ErrSessionNotFound
	}
	s := v.(*Session)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionNotFound
	}
	s.lastSeen = m.now()
	fn(s)
	return nil
}

// snapshot must be called with s.mu held, or before s is shared.
func (s *Session) snapshot() Snapshot {
	c := s.cart.Clone()
	return Snapshot{
		ID:        s.ID,
		OpenedAt:  s.OpenedAt,
		Cart:      c,
		Catalog:   s.catalog,
		Lines:     cart.Lines(c, s.catalog),
		Total:     c.TotalPrice(s.catalog),
		ItemCount: c.ItemCount(),
	}
}
