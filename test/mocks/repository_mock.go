// Package mocks provides mock implementations of port interfaces for testing.
// The core services depend on ports, not concrete adapters, so these
// in-memory implementations stand in for MongoDB, Redis and RabbitMQ.
package mocks

import (
	"context"
	"sync"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// MockAccountRepository implements ports.AccountRepository in memory, one
// map per role to mirror the per-role collections.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.Role]map[string]*domain.Account

	// Call tracking for verification
	FindByUsernameCalls []string
	CreateCalls         []domain.Account
	UpdateCalls         []string

	// Error injection for testing error scenarios
	FindError   error
	CreateError error
	UpdateError error
}

var _ ports.AccountRepository = (*MockAccountRepository)(nil)

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[domain.Role]map[string]*domain.Account),
	}
}

// SeedAccount adds an account for test setup, bypassing validation.
func (m *MockAccountRepository) SeedAccount(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accounts[account.Role] == nil {
		m.accounts[account.Role] = make(map[string]*domain.Account)
	}
	cp := *account
	m.accounts[account.Role][account.ID] = &cp
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.Account, error) {
	m.mu.Lock()
	m.FindByUsernameCalls = append(m.FindByUsernameCalls, string(role)+"/"+username)
	m.mu.Unlock()

	if m.FindError != nil {
		return nil, m.FindError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts[role] {
		if account.Username == username {
			cp := *account
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountRepository) FindByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if account, ok := m.accounts[role][id]; ok {
		cp := *account
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, *account)

	if m.CreateError != nil {
		return m.CreateError
	}
	if m.accounts[account.Role] == nil {
		m.accounts[account.Role] = make(map[string]*domain.Account)
	}
	cp := *account
	m.accounts[account.Role][account.ID] = &cp
	return nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls = append(m.UpdateCalls, account.ID)

	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.accounts[account.Role][account.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *account
	m.accounts[account.Role][account.ID] = &cp
	return nil
}

// MockLeaveRepository implements ports.LeaveRepository in memory.
type MockLeaveRepository struct {
	mu     sync.RWMutex
	leaves map[string]*domain.LeaveRequest

	CreateCalls      []string
	ApplyReviewCalls []ports.ReviewUpdate

	CreateError      error
	FindError        error
	ApplyReviewError error
}

var _ ports.LeaveRepository = (*MockLeaveRepository)(nil)

func NewMockLeaveRepository() *MockLeaveRepository {
	return &MockLeaveRepository{leaves: make(map[string]*domain.LeaveRequest)}
}

// SeedLeave adds a leave request for test setup.
func (m *MockLeaveRepository) SeedLeave(leave *domain.LeaveRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *leave
	m.leaves[leave.ID] = &cp
}

func (m *MockLeaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, leave.ID)

	if m.CreateError != nil {
		return m.CreateError
	}
	cp := *leave
	m.leaves[leave.ID] = &cp
	return nil
}

func (m *MockLeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if leave, ok := m.leaves[id]; ok {
		cp := *leave
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (m *MockLeaveRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.LeaveRequest, error) {
	return m.list(func(l *domain.LeaveRequest) bool { return l.StudentID == studentID })
}

func (m *MockLeaveRepository) ListByDepartment(ctx context.Context, department string) ([]*domain.LeaveRequest, error) {
	return m.list(func(l *domain.LeaveRequest) bool { return l.Department == department })
}

func (m *MockLeaveRepository) ListByHostel(ctx context.Context, hostel string) ([]*domain.LeaveRequest, error) {
	return m.list(func(l *domain.LeaveRequest) bool { return l.Hostel == hostel })
}

func (m *MockLeaveRepository) list(match func(*domain.LeaveRequest) bool) ([]*domain.LeaveRequest, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LeaveRequest
	for _, leave := range m.leaves {
		if match(leave) {
			cp := *leave
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockLeaveRepository) ApplyReview(ctx context.Context, id string, upd ports.ReviewUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyReviewCalls = append(m.ApplyReviewCalls, upd)

	if m.ApplyReviewError != nil {
		return m.ApplyReviewError
	}
	leave, ok := m.leaves[id]
	if !ok {
		return domain.ErrNotFound
	}

	at := upd.ReviewedAt
	switch upd.Track {
	case domain.TrackHostel:
		leave.HostelStatus = upd.Status
		leave.HostelReviewedBy = upd.ReviewerID
		leave.HostelReviewedAt = &at
	default:
		leave.DepartmentStatus = upd.Status
		leave.DepartmentReviewedBy = upd.ReviewerID
		leave.DepartmentReviewedAt = &at
	}
	leave.UpdatedAt = at
	return nil
}

// MockOutboxStore implements ports.OutboxStore in memory.
type MockOutboxStore struct {
	mu     sync.RWMutex
	Events []*domain.OutboxEvent

	AppendError error
	FetchError  error
	MarkError   error

	MarkProcessedCalls []string
}

var _ ports.OutboxStore = (*MockOutboxStore)(nil)

func NewMockOutboxStore() *MockOutboxStore {
	return &MockOutboxStore{}
}

func (m *MockOutboxStore) Append(ctx context.Context, event *domain.OutboxEvent) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *event
	m.Events = append(m.Events, &cp)
	return nil
}

func (m *MockOutboxStore) FetchUnprocessed(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.FetchError != nil {
		return nil, m.FetchError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, event := range m.Events {
		if event.ProcessedAt == nil {
			cp := *event
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockOutboxStore) MarkProcessed(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkProcessedCalls = append(m.MarkProcessedCalls, id)

	if m.MarkError != nil {
		return m.MarkError
	}
	for _, event := range m.Events {
		if event.ID == id && event.ProcessedAt == nil {
			now := timeNow()
			event.ProcessedAt = &now
			return nil
		}
	}
	return domain.ErrNotFound
}
