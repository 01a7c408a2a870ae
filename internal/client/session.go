package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"travel-booking/internal/dto/response"

	"go.uber.org/zap"
)

// Identity is what a login leaves behind.
type Identity struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	User      response.UserResponse `json:"user"`
}

func (id Identity) expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && !now.Before(id.ExpiresAt)
}

// TokenStore persists the identity between runs. Load returns nil when
// nothing is stored.
type TokenStore interface {
	Load() (*Identity, error)
	Save(id Identity) error
	Clear() error
}

// Session is the single owner of the current identity. The client and the
// store share one instance and observe begin/end through Subscribe.
type Session struct {
	mu       sync.RWMutex
	store    TokenStore
	identity *Identity
	subs     map[int]func(Identity, bool)
	nextSub  int
	now      func() time.Time
	log      *zap.Logger
}

func NewSession(store TokenStore, log *zap.Logger) *Session {
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &Session{
		store: store,
		subs:  make(map[int]func(Identity, bool)),
		now:   time.Now,
		log:   log.With(zap.String("component", "session")),
	}
}

// Restore loads a persisted identity. An expired one is cleared.
func (s *Session) Restore() error {
	id, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if id == nil || id.Token == "" {
		return nil
	}
	if id.expired(s.now()) {
		s.log.Info("Stored session expired")
		return s.store.Clear()
	}

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()

	s.notify(*id, true)
	return nil
}

// Begin starts a session and persists it.
func (s *Session) Begin(id Identity) error {
	if id.Token == "" {
		return errors.New("session token is empty")
	}
	if err := s.store.Save(id); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.identity = &id
	s.mu.Unlock()

	s.log.Info("Session started", zap.String("user_id", id.User.ID))
	s.notify(id, true)
	return nil
}

// End tears the session down. Ending an inactive session is a no-op.
func (s *Session) End() error {
	s.mu.Lock()
	prev := s.identity
	s.identity = nil
	s.mu.Unlock()

	if prev == nil {
		return nil
	}

	err := s.store.Clear()
	s.log.Info("Session ended", zap.String("user_id", prev.User.ID))
	s.notify(*prev, false)
	return err
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return "", false
	}
	return s.identity.Token, true
}

func (s *Session) Identity() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) IsAdmin() bool {
	id, ok := s.Identity()
	return ok && id.User.IsAdmin()
}

// Subscribe registers fn for begin (active=true) and end (active=false)
// events and returns a function that removes it.
func (s *Session) Subscribe(fn func(id Identity, active bool)) func() {
	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
	}
}

func (s *Session) notify(id Identity, active bool) {
	s.mu.RLock()
	subs := make([]func(Identity, bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(id, active)
	}
}

// ==================== TOKEN STORES ====================

// MemoryTokenStore keeps the identity for the life of the process.
type MemoryTokenStore struct {
	mu sync.Mutex
	id *Identity
}

func (m *MemoryTokenStore) Load() (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.id == nil {
		return nil, nil
	}
	id := *m.id
	return &id, nil
}

func (m *MemoryTokenStore) Save(id Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = &id
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = nil
	return nil
}

// FileTokenStore keeps the identity as a JSON file readable by the owner only.
type FileTokenStore struct {
	Path string
}

func (f FileTokenStore) Load() (*Identity, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return &id, nil
}

func (f FileTokenStore) Save(id Identity) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o600)
}

func (f FileTokenStore) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
