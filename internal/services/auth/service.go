// Package auth manages anonymous sessions. There are no accounts:
// a session is created on first contact, identifies the browser or
// CLI it belongs to, and records which rooms it has joined and which
// player names it uses often.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/palcut/palcut-go/internal/dependencies/clock"
	"github.com/palcut/palcut-go/internal/model"
	"github.com/palcut/palcut-go/internal/storage"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

// MaxFrequentNames caps the remembered-name list
const MaxFrequentNames = 10

// Session represents an anonymous session
type Session struct {
	Token string

	// ID is the stable identity behind the token; frequent-name lists
	// are keyed by it
	ID string

	CreatedAt time.Time
	ExpiresAt time.Time

	// rooms the session has joined
	rooms map[model.RoomCode]bool
}

// Service handles session management and per-session state
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 7 * 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateSession creates a new anonymous session
func (s *Service) CreateSession() (*Session, error) {
	now := s.clock.Now()
	session := &Session{
		Token:     generateID("sess_"),
		ID:        generateID("u_"),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
		rooms:     make(map[model.RoomCode]bool),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session, nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// JoinRoom records that the session has joined a room
func (s *Service) JoinRoom(token string, code model.RoomCode) error {
	session, err := s.ValidateSession(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	session.rooms[code] = true
	s.mu.Unlock()
	return nil
}

// CheckRoom returns model.ErrNotInRoom unless the session has joined
// the room
func (s *Service) CheckRoom(token string, code model.RoomCode) error {
	session, err := s.ValidateSession(token)
	if err != nil {
		return err
	}

	s.mu.RLock()
	joined := session.rooms[code]
	s.mu.RUnlock()

	if !joined {
		return model.ErrNotInRoom
	}
	return nil
}

// Rooms returns the room codes the session has joined
func (s *Service) Rooms(token string) ([]model.RoomCode, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]model.RoomCode, 0, len(session.rooms))
	for code := range session.rooms {
		codes = append(codes, code)
	}
	return codes, nil
}

// RememberNames merges player names into the session's frequent-name
// list. New names go to the front; the list is capped.
func (s *Service) RememberNames(ctx context.Context, token string, names []string) error {
	session, err := s.ValidateSession(token)
	if err != nil {
		return err
	}

	existing, err := s.storage.GetFrequentNames(ctx, session.ID)
	if err != nil {
		return err
	}

	merged := make([]string, 0, MaxFrequentNames)
	seen := make(map[string]bool)
	for _, name := range append(names, existing...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, name)
		if len(merged) == MaxFrequentNames {
			break
		}
	}

	return s.storage.SaveFrequentNames(ctx, session.ID, merged)
}

// FrequentNames returns the session's remembered player names
func (s *Service) FrequentNames(ctx context.Context, token string) ([]string, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return nil, err
	}
	return s.storage.GetFrequentNames(ctx, session.ID)
}

// ForgetName removes a name from the session's frequent-name list
func (s *Service) ForgetName(ctx context.Context, token string, name string) error {
	session, err := s.ValidateSession(token)
	if err != nil {
		return err
	}

	existing, err := s.storage.GetFrequentNames(ctx, session.ID)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(existing))
	for _, n := range existing {
		if !strings.EqualFold(n, name) {
			kept = append(kept, n)
		}
	}

	return s.storage.SaveFrequentNames(ctx, session.ID, kept)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateID generates a random ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
