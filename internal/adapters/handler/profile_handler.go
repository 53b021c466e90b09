package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

type ProfileHandler struct {
	accounts ports.AccountService
	leaves   ports.LeaveService
}

func NewProfileHandler(accounts ports.AccountService, leaves ports.LeaveService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, leaves: leaves}
}

type profilePage struct {
	Account *domain.Account        `json:"account"`
	Leaves  []*domain.LeaveRequest `json:"leaves,omitempty"`
}

// Home serves the role's landing page with the logged-in account. Student
// homes also carry the student's leave history.
func (h *ProfileHandler) Home(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFrom(r.Context())
		if !ok {
			failRedirect(w, r, domain.ErrNoSession, role.LoginPath())
			return
		}
		h.renderProfile(w, r, role, principal.AccountID)
	}
}

// Show serves a profile page by id.
func (h *ProfileHandler) Show(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderProfile(w, r, role, chi.URLParam(r, "id"))
	}
}

// EditForm serves the profile edit page data.
func (h *ProfileHandler) EditForm(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := h.accounts.Get(r.Context(), role, chi.URLParam(r, "id"))
		if err != nil {
			failRedirect(w, r, err, role.HomePath())
			return
		}
		writePage(w, r, profilePage{Account: account})
	}
}

// Update applies posted profile edits. Only the account's owner may edit it;
// a posted password is re-hashed before it is stored.
func (h *ProfileHandler) Update(role domain.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		principal, ok := middleware.PrincipalFrom(r.Context())
		if !ok || principal.AccountID != id {
			failRedirect(w, r, domain.ErrForbidden, role.HomePath())
			return
		}

		if err := r.ParseForm(); err != nil {
			failRedirect(w, r, err, role.HomePath())
			return
		}

		upd := ports.ProfileUpdate{
			Name:     r.PostFormValue("name"),
			Image:    r.PostFormValue("image"),
			Password: r.PostFormValue("password"),
		}

		if _, err := h.accounts.UpdateProfile(r.Context(), role, id, upd); err != nil {
			failRedirect(w, r, err, role.HomePath())
			return
		}

		redirect(w, r, "/"+string(role)+"/"+id, middleware.FlashSuccess, "Profile updated successfully")
	}
}

func (h *ProfileHandler) renderProfile(w http.ResponseWriter, r *http.Request, role domain.Role, id string) {
	account, err := h.accounts.Get(r.Context(), role, id)
	if err != nil {
		failRedirect(w, r, err, role.LoginPath())
		return
	}

	page := profilePage{Account: account}
	if role == domain.RoleStudent {
		if leaves, err := h.leaves.ListForStudent(r.Context(), account.ID); err == nil {
			page.Leaves = leaves
		}
	}
	writePage(w, r, page)
}
