package handler

import (
	"net/http"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
	"github.com/campuskit/leave-service/internal/core/ports"
)

type RegistrationHandler struct {
	registration ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration}
}

// Form serves the registration page data.
func (h *RegistrationHandler) Form(w http.ResponseWriter, r *http.Request) {
	writePage(w, r, nil)
}

// Register creates a student, department head or warden account from the
// posted form and redirects to the new account's login page.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		failRedirect(w, r, err, "/register")
		return
	}

	in := ports.RegistrationInput{
		Role:            domain.Role(r.PostFormValue("type")),
		Name:            r.PostFormValue("name"),
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password2"),
		Department:      r.PostFormValue("department"),
		Hostel:          r.PostFormValue("hostel"),
		Image:           r.PostFormValue("image"),
	}

	account, err := h.registration.Register(r.Context(), in)
	if err != nil {
		failRedirect(w, r, err, "/register")
		return
	}

	redirect(w, r, account.Role.LoginPath(), middleware.FlashSuccess, "Registered successfully")
}
