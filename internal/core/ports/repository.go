package ports

import (
	"context"
	"time"

	"github.com/campuskit/leave-service/internal/core/domain"
)

// AccountRepository persists the three role-keyed account stores. Lookups are
// always scoped to a single role's collection; there is no cross-role query.
type AccountRepository interface {
	FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.Account, error)
	FindByID(ctx context.Context, role domain.Role, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
}

// ReviewUpdate is the single-document write recording a track decision.
type ReviewUpdate struct {
	Track      domain.Track
	Status     domain.TrackStatus
	ReviewerID string
	ReviewedAt time.Time
}

// LeaveRepository persists leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.LeaveRequest, error)
	ListByDepartment(ctx context.Context, department string) ([]*domain.LeaveRequest, error)
	ListByHostel(ctx context.Context, hostel string) ([]*domain.LeaveRequest, error)
	ApplyReview(ctx context.Context, id string, upd ReviewUpdate) error
}

// OutboxStore persists pending integration events alongside domain writes.
type OutboxStore interface {
	Append(ctx context.Context, event *domain.OutboxEvent) error
	FetchUnprocessed(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id string) error
}
