package middleware

import (
	"context"
	"net/http"

	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

// SessionCookie is the client-held session reference.
const SessionCookie = "leave_session"

type contextKey string

const principalKey contextKey = "principal"

// Principal is the resolved identity attached to the request context by the
// session gate.
type Principal struct {
	AccountID string
	Role      domain.Role
	Token     string
}

// PrincipalFrom returns the resolved principal, if the session gate ran.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey).(*Principal)
	return p, ok
}

// SessionToken extracts the opaque session reference from the request.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionGate resolves the session cookie and enforces a required role per
// route. Failures redirect to the required role's login entry point with a
// one-line message rather than a bare error page.
type SessionGate struct {
	sessions ports.SessionManager
}

func NewSessionGate(sessions ports.SessionManager) *SessionGate {
	return &SessionGate{sessions: sessions}
}

// RequireRole gates a route on an authenticated session with the given role.
func (g *SessionGate) RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := g.sessions.Resolve(r.Context(), SessionToken(r))
			if err != nil {
				SetFlash(w, FlashError, "You need to be logged in")
				http.Redirect(w, r, role.LoginPath(), http.StatusSeeOther)
				return
			}

			if sess.Role != role {
				SetFlash(w, FlashError, "Unauthorized access")
				http.Redirect(w, r, role.LoginPath(), http.StatusSeeOther)
				return
			}

			principal := &Principal{AccountID: sess.AccountID, Role: sess.Role, Token: sess.Token}
			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession gates a route on any authenticated session, regardless of
// role. Used for routes like /logout that every role shares.
func (g *SessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.sessions.Resolve(r.Context(), SessionToken(r))
		if err != nil {
			SetFlash(w, FlashError, "You need to be logged in")
			http.Redirect(w, r, domain.RoleStudent.LoginPath(), http.StatusSeeOther)
			return
		}

		principal := &Principal{AccountID: sess.AccountID, Role: sess.Role, Token: sess.Token}
		ctx := context.WithValue(r.Context(), principalKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
