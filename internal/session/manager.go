package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dedik2urniawan/fct-engine/internal/domain/models"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrMenuNotFound       = errors.New("menu not found")
	ErrMenuExists         = errors.New("menu already exists")
	ErrIngredientNotFound = errors.New("ingredient index out of range")
)

// Session holds one user's menu and ingredient state. State is isolated per
// session id; reference table reloads never touch it.
type Session struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	LastSeen  time.Time          `json:"last_seen"`
	Menus     []models.MenuEntry `json:"menus"`
}

// Manager keeps all sessions behind one RW mutex. The calculation pipeline
// never works on live state: Snapshot hands out deep copies.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewManager creates a session manager with the given idle TTL.
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create starts a fresh empty session.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now, LastSeen: now}
	m.sessions[s.ID] = s

	m.logger.Info("session created", zap.String("session_id", s.ID))
	return s
}

// Delete removes a session outright.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// AddMenu appends an empty menu with a session-unique name.
func (m *Manager) AddMenu(sessionID, name string) error {
	return m.withSession(sessionID, func(s *Session) error {
		if _, ok := findMenu(s, name); ok {
			return fmt.Errorf("%w: %s", ErrMenuExists, name)
		}
		s.Menus = append(s.Menus, models.MenuEntry{Name: name})
		return nil
	})
}

// RenameMenu changes a menu's name, keeping names unique.
func (m *Manager) RenameMenu(sessionID, name, newName string) error {
	return m.withSession(sessionID, func(s *Session) error {
		idx, ok := findMenu(s, name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, name)
		}
		if newName != name {
			if _, exists := findMenu(s, newName); exists {
				return fmt.Errorf("%w: %s", ErrMenuExists, newName)
			}
		}
		s.Menus[idx].Name = newName
		return nil
	})
}

// DeleteMenu removes a menu and all its ingredients.
func (m *Manager) DeleteMenu(sessionID, name string) error {
	return m.withSession(sessionID, func(s *Session) error {
		idx, ok := findMenu(s, name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, name)
		}
		s.Menus = append(s.Menus[:idx], s.Menus[idx+1:]...)
		return nil
	})
}

// AddIngredient appends an ingredient row to a menu.
func (m *Manager) AddIngredient(sessionID, menuName string, entry models.IngredientEntry) error {
	return m.withSession(sessionID, func(s *Session) error {
		idx, ok := findMenu(s, menuName)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, menuName)
		}
		s.Menus[idx].Ingredients = append(s.Menus[idx].Ingredients, entry)
		return nil
	})
}

// ReplaceIngredient swaps the ingredient at the given position; edits never
// mutate an entry in place.
func (m *Manager) ReplaceIngredient(sessionID, menuName string, position int, entry models.IngredientEntry) error {
	return m.withSession(sessionID, func(s *Session) error {
		idx, ok := findMenu(s, menuName)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, menuName)
		}
		if position < 0 || position >= len(s.Menus[idx].Ingredients) {
			return fmt.Errorf("%w: %d", ErrIngredientNotFound, position)
		}
		s.Menus[idx].Ingredients[position] = entry
		return nil
	})
}

// DeleteIngredient removes the ingredient at the given position.
func (m *Manager) DeleteIngredient(sessionID, menuName string, position int) error {
	return m.withSession(sessionID, func(s *Session) error {
		idx, ok := findMenu(s, menuName)
		if !ok {
			return fmt.Errorf("%w: %s", ErrMenuNotFound, menuName)
		}
		ing := s.Menus[idx].Ingredients
		if position < 0 || position >= len(ing) {
			return fmt.Errorf("%w: %d", ErrIngredientNotFound, position)
		}
		s.Menus[idx].Ingredients = append(ing[:position], ing[position+1:]...)
		return nil
	})
}

// Snapshot returns a deep copy of the session's menus for computation.
func (m *Manager) Snapshot(sessionID string) ([]models.MenuEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.LastSeen = time.Now()

	menus := make([]models.MenuEntry, len(s.Menus))
	for i, menu := range s.Menus {
		ingredients := make([]models.IngredientEntry, len(menu.Ingredients))
		copy(ingredients, menu.Ingredients)
		menus[i] = models.MenuEntry{Name: menu.Name, Ingredients: ingredients}
	}
	return menus, nil
}

// Sweep drops sessions idle past the TTL and reports how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Info("expired sessions swept", zap.Int("removed", removed))
	}
	return removed
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) withSession(id string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.LastSeen = time.Now()
	return fn(s)
}

func findMenu(s *Session, name string) (int, bool) {
	for i, menu := range s.Menus {
		if menu.Name == name {
			return i, true
		}
	}
	return 0, false
}
