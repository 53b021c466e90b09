package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// hostelQueueWindow bounds how long decided requests stay visible in a
// warden's active queue.
const hostelQueueWindow = 30 * 24 * time.Hour

// LeaveService implements submission and the dual-track approval workflow.
// The two tracks are decided independently; neither gates the other.
type LeaveService struct {
	leaves   ports.LeaveRepository
	accounts ports.AccountRepository
	outbox   ports.OutboxStore
}

var _ ports.LeaveService = (*LeaveService)(nil)

func NewLeaveService(leaves ports.LeaveRepository, accounts ports.AccountRepository, outbox ports.OutboxStore) *LeaveService {
	return &LeaveService{leaves: leaves, accounts: accounts, outbox: outbox}
}

func (s *LeaveService) Submit(ctx context.Context, student *domain.Account, in ports.LeaveInput) (*domain.LeaveRequest, error) {
	if student.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	if in.Subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrValidation)
	}
	if in.From.IsZero() || in.To.IsZero() {
		return nil, fmt.Errorf("%w: leave dates are required", domain.ErrValidation)
	}
	if in.To.Before(in.From) {
		return nil, fmt.Errorf("%w: end date precedes start date", domain.ErrValidation)
	}

	now := time.Now()
	leave := &domain.LeaveRequest{
		ID:               uuid.NewString(),
		Subject:          in.Subject,
		Reason:           in.Reason,
		From:             in.From,
		To:               in.To,
		Days:             domain.LeaveDays(in.From, in.To),
		StudentID:        student.ID,
		StudentUsername:  student.Username,
		Department:       student.Department,
		Hostel:           student.Hostel,
		DepartmentStatus: domain.TrackPending,
		HostelStatus:     domain.TrackPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, err
	}

	s.appendEvent(ctx, ports.EventLeaveSubmitted, ports.LeaveSubmittedEvent{
		LeaveID:         leave.ID,
		StudentID:       leave.StudentID,
		StudentUsername: leave.StudentUsername,
		Department:      leave.Department,
		Hostel:          leave.Hostel,
		From:            leave.From,
		To:              leave.To,
		Days:            leave.Days,
	})

	return leave, nil
}

func (s *LeaveService) ListForStudent(ctx context.Context, studentID string) ([]*domain.LeaveRequest, error) {
	if _, err := s.accounts.FindByID(ctx, domain.RoleStudent, studentID); err != nil {
		return nil, err
	}
	return s.leaves.ListByStudent(ctx, studentID)
}

func (s *LeaveService) ReviewQueue(ctx context.Context, reviewer *domain.Account) ([]*domain.LeaveRequest, error) {
	switch reviewer.Role {
	case domain.RoleDepartmentHead:
		// Heads see every departmental request, decided or not.
		return s.leaves.ListByDepartment(ctx, reviewer.Department)

	case domain.RoleWarden:
		all, err := s.leaves.ListByHostel(ctx, reviewer.Hostel)
		if err != nil {
			return nil, err
		}
		cutoff := time.Now().Add(-hostelQueueWindow)
		visible := make([]*domain.LeaveRequest, 0, len(all))
		for _, l := range all {
			if l.HostelStatus == domain.TrackPending {
				visible = append(visible, l)
				continue
			}
			if at := l.HostelReviewedAt; at != nil && !at.Before(cutoff) {
				visible = append(visible, l)
			}
		}
		return visible, nil

	default:
		return nil, domain.ErrForbidden
	}
}

func (s *LeaveService) PendingForStudent(ctx context.Context, reviewer *domain.Account, studentID string) (*domain.Account, []*domain.LeaveRequest, error) {
	track, ok := domain.TrackForRole(reviewer.Role)
	if !ok {
		return nil, nil, domain.ErrForbidden
	}

	student, err := s.accounts.FindByID(ctx, domain.RoleStudent, studentID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkScope(reviewer, student.Department, student.Hostel); err != nil {
		return nil, nil, err
	}

	all, err := s.leaves.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	pending := make([]*domain.LeaveRequest, 0, len(all))
	for _, l := range all {
		if l.Status(track) == domain.TrackPending {
			pending = append(pending, l)
		}
	}
	return student, pending, nil
}

func (s *LeaveService) Review(ctx context.Context, reviewer *domain.Account, leaveID string, approve bool) (*domain.LeaveRequest, error) {
	track, ok := domain.TrackForRole(reviewer.Role)
	if !ok {
		return nil, domain.ErrForbidden
	}

	leave, err := s.leaves.FindByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if err := checkScope(reviewer, leave.Department, leave.Hostel); err != nil {
		return nil, err
	}

	// A decided track is terminal. Re-reviewing is rejected rather than
	// overwritten so a recorded decision cannot be silently rewritten.
	if leave.Status(track).Terminal() {
		return nil, domain.ErrAlreadyReviewed
	}

	status := domain.TrackDenied
	if approve {
		status = domain.TrackApproved
	}
	now := time.Now()

	upd := ports.ReviewUpdate{
		Track:      track,
		Status:     status,
		ReviewerID: reviewer.ID,
		ReviewedAt: now,
	}
	if err := s.leaves.ApplyReview(ctx, leave.ID, upd); err != nil {
		return nil, err
	}

	switch track {
	case domain.TrackDepartment:
		leave.DepartmentStatus = status
		leave.DepartmentReviewedBy = reviewer.ID
		leave.DepartmentReviewedAt = &now
	case domain.TrackHostel:
		leave.HostelStatus = status
		leave.HostelReviewedBy = reviewer.ID
		leave.HostelReviewedAt = &now
	}
	leave.UpdatedAt = now

	s.appendEvent(ctx, ports.EventLeaveReviewed, ports.LeaveReviewedEvent{
		LeaveID:         leave.ID,
		StudentID:       leave.StudentID,
		StudentUsername: leave.StudentUsername,
		Track:           string(track),
		Status:          string(status),
		ReviewerID:      reviewer.ID,
		ReviewedAt:      now,
	})

	return leave, nil
}

// checkScope rejects reviewers acting outside their own department or hostel.
func checkScope(reviewer *domain.Account, department, hostel string) error {
	switch reviewer.Role {
	case domain.RoleDepartmentHead:
		if reviewer.Department != department {
			return domain.ErrForbidden
		}
	case domain.RoleWarden:
		if reviewer.Hostel != hostel {
			return domain.ErrForbidden
		}
	default:
		return domain.ErrForbidden
	}
	return nil
}

// appendEvent records an outbox event in the same logical operation as the
// domain write. Append failures do not fail the operation; the event is lost
// rather than the user-facing write.
func (s *LeaveService) appendEvent(ctx context.Context, eventType string, payload any) {
	if s.outbox == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.outbox.Append(ctx, &domain.OutboxEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Payload:   body,
		CreatedAt: time.Now(),
	})
}
