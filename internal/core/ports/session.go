package ports

import (
	"context"

	"github.com/campuskit/leave-service/internal/core/domain"
)

// Session binds an opaque client-held token to a principal's identity and
// role. The token itself carries no claims; everything is resolved server-side.
type Session struct {
	Token     string
	AccountID string
	Role      domain.Role
}

// SessionManager is the explicit session component injected into request
// handlers. Expiry is sliding: Resolve refreshes the TTL. Concurrent sessions
// for one account are permitted.
type SessionManager interface {
	Establish(ctx context.Context, account *domain.Account) (*Session, error)
	// Resolve returns the session bound to token, or domain.ErrNoSession.
	Resolve(ctx context.Context, token string) (*Session, error)
	Invalidate(ctx context.Context, token string) error
}
