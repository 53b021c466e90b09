package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// MockSessionManager implements ports.SessionManager in memory.
type MockSessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*ports.Session

	EstablishCalls  []string
	InvalidateCalls []string

	EstablishError  error
	ResolveError    error
	InvalidateError error
}

var _ ports.SessionManager = (*MockSessionManager)(nil)

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{sessions: make(map[string]*ports.Session)}
}

// SeedSession registers a session with a fixed token for test setup.
func (m *MockSessionManager) SeedSession(token, accountID string, role domain.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = &ports.Session{Token: token, AccountID: accountID, Role: role}
}

func (m *MockSessionManager) Establish(ctx context.Context, account *domain.Account) (*ports.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EstablishCalls = append(m.EstablishCalls, account.ID)

	if m.EstablishError != nil {
		return nil, m.EstablishError
	}
	sess := &ports.Session{Token: uuid.NewString(), AccountID: account.ID, Role: account.Role}
	m.sessions[sess.Token] = sess
	return sess, nil
}

func (m *MockSessionManager) Resolve(ctx context.Context, token string) (*ports.Session, error) {
	if m.ResolveError != nil {
		return nil, m.ResolveError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[token]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, domain.ErrNoSession
}

func (m *MockSessionManager) Invalidate(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InvalidateCalls = append(m.InvalidateCalls, token)

	if m.InvalidateError != nil {
		return m.InvalidateError
	}
	delete(m.sessions, token)
	return nil
}
