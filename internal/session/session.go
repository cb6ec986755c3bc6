package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/openqda/qda/internal/store"
)

// EventKind names the two notification kinds fired to collaborators.
type EventKind string

const (
	ConnectionChanged EventKind = "connection changed"
	CoderChanged      EventKind = "coder changed"
)

type Event struct {
	Kind    EventKind
	CoderID int64
}

// Bus fans events out to registered listeners. No core logic depends on
// listener side effects; handlers run synchronously on the publishing
// goroutine.
type Bus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uuid.UUID]func(Event))}
}

func (b *Bus) Subscribe(fn func(Event)) uuid.UUID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	b.subs[id] = fn
	return id
}

func (b *Bus) Unsubscribe(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, fn := range b.subs {
		fn(e)
	}
}

// Session holds the active data source and coder, and notifies listeners
// whenever either is swapped. All stores resolve their connection through
// the session so a profile change takes effect everywhere at once.
type Session struct {
	mu      sync.RWMutex
	bus     *Bus
	profile Profile
	db      *gorm.DB
	store   store.Store
	coderID int64
}

func New() *Session {
	return &Session{bus: NewBus()}
}

// Connect opens the profile's data source, swaps it in, closes the previous
// one and fires a connection-changed event.
func (s *Session) Connect(p Profile) error {
	db, err := Open(p)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.db
	s.db = db
	s.store = store.NewGormStore(db)
	s.profile = p
	s.coderID = p.CoderID
	s.mu.Unlock()

	if old != nil {
		closeDB(old)
	}

	s.bus.Publish(Event{Kind: ConnectionChanged, CoderID: p.CoderID})
	return nil
}

// Close tears down the active connection and notifies listeners.
func (s *Session) Close() error {
	s.mu.Lock()
	old := s.db
	s.db = nil
	s.store = nil
	s.mu.Unlock()

	if old != nil {
		closeDB(old)
	}

	s.bus.Publish(Event{Kind: ConnectionChanged})
	return nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.Warnf("closing connection: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Warnf("closing connection: %v", err)
	}
}

// Store returns the active store, or nil when disconnected.
func (s *Session) Store() store.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

func (s *Session) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Session) CoderID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coderID
}

// SetCoder switches the active coder and fires a coder-changed event.
func (s *Session) SetCoder(id int64) {
	s.mu.Lock()
	s.coderID = id
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: CoderChanged, CoderID: id})
}

func (s *Session) Bus() *Bus {
	return s.bus
}
