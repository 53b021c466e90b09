package ports

import (
	"context"
	"time"

	"github.com/campuskit/leave-service/internal/core/domain"
)

type AuthService interface {
	// Authenticate verifies a username/secret pair against the given role's
	// store. Failures are domain.ErrUnknownUser or domain.ErrInvalidCredential;
	// callers surface both as the same generic message.
	Authenticate(ctx context.Context, role domain.Role, username, password string) (*domain.Account, error)
}

// RegistrationInput carries the raw registration form fields.
type RegistrationInput struct {
	Role            domain.Role
	Name            string
	Username        string
	Password        string
	PasswordConfirm string
	Department      string
	Hostel          string
	Image           string
}

type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) (*domain.Account, error)
}

// ProfileUpdate carries editable profile fields. Empty strings leave the
// stored value unchanged; a non-empty Password is re-hashed on write.
type ProfileUpdate struct {
	Name     string
	Image    string
	Password string
}

type AccountService interface {
	Get(ctx context.Context, role domain.Role, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, role domain.Role, id string, upd ProfileUpdate) (*domain.Account, error)
}

// LeaveInput carries the leave application form fields.
type LeaveInput struct {
	Subject string
	Reason  string
	From    time.Time
	To      time.Time
}

type LeaveService interface {
	Submit(ctx context.Context, student *domain.Account, in LeaveInput) (*domain.LeaveRequest, error)
	ListForStudent(ctx context.Context, studentID string) ([]*domain.LeaveRequest, error)
	// ReviewQueue lists the requests visible to the reviewer: every
	// departmental request for a head, pending plus recently decided (30 days)
	// for a warden.
	ReviewQueue(ctx context.Context, reviewer *domain.Account) ([]*domain.LeaveRequest, error)
	// PendingForStudent returns the reviewer-visible pending requests of one
	// student, scope-checked against the reviewer.
	PendingForStudent(ctx context.Context, reviewer *domain.Account, studentID string) (*domain.Account, []*domain.LeaveRequest, error)
	// Review records a terminal decision on the reviewer's track.
	Review(ctx context.Context, reviewer *domain.Account, leaveID string, approve bool) (*domain.LeaveRequest, error)
}
