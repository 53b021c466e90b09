package handler

import (
	"net/http"
	"time"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

type AuthHandler struct {
	auth       ports.AuthService
	sessions   ports.SessionManager
	sessionTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionManager, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, sessionTTL: sessionTTL}
}

// LoginPage serves the login page data for a role's login entry point.
func (h *AuthHandler) LoginPage(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, map[string]string{"role": string(role)})
	}
}

// Login verifies the posted credentials against the role's store and
// establishes a session on success.
func (h *AuthHandler) Login(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			failRedirect(w, r, err, role.LoginPath())
			return
		}

		account, err := h.auth.Authenticate(r.Context(), role, r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			failRedirect(w, r, err, role.LoginPath())
			return
		}

		sess, err := h.sessions.Establish(r.Context(), account)
		if err != nil {
			failRedirect(w, r, err, role.LoginPath())
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    sess.Token,
			Path:     "/",
			MaxAge:   int(h.sessionTTL / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, role.HomePath(), http.StatusSeeOther)
	}
}

// Logout destroys the session and clears the client-held reference. Any
// subsequent request with the old token resolves to no session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if err := h.sessions.Invalidate(r.Context(), token); err != nil {
		failRedirect(w, r, err, "/")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	redirect(w, r, "/", middleware.FlashSuccess, "Successfully logged out")
}
