package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campuskit/leave-service/internal/adapters/middleware"
	"github.com/campuskit/leave-service/internal/core/domain"
)

// NewRouter wires the role-prefixed HTTP surface. Each role's routes are
// gated on a session with that exact role; a mismatched session is bounced
// to the route's login entry point.
func NewRouter(
	auth *AuthHandler,
	registration *RegistrationHandler,
	profile *ProfileHandler,
	leave *LeaveHandler,
	health *HealthHandler,
	gate *middleware.SessionGate,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Instrument(logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		writePage(w, req, map[string]string{"message": "campus leave service"})
	})

	r.Get("/health", health.Health)
	r.Get("/health/ready", health.Ready)
	r.Get("/health/live", health.Live)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/register", registration.Form)
	r.Post("/student/register", registration.Register)

	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleDepartmentHead, domain.RoleWarden} {
		r.Get(role.LoginPath(), auth.LoginPage(role))
		r.Post(role.LoginPath(), auth.Login(role))
	}

	r.With(gate.RequireSession).Get("/logout", auth.Logout)

	student := gate.RequireRole(domain.RoleStudent)
	r.With(student).Get("/student/home", profile.Home(domain.RoleStudent))
	r.With(student).Get("/student/{id}", profile.Show(domain.RoleStudent))
	r.With(student).Get("/student/{id}/edit", profile.EditForm(domain.RoleStudent))
	r.With(student).Put("/student/{id}", profile.Update(domain.RoleStudent))
	r.With(student).Get("/student/{id}/apply", leave.ApplyForm)
	r.With(student).Post("/student/{id}/apply", leave.Apply)
	r.With(gate.RequireSession).Get("/student/{id}/track", leave.Track)

	hod := gate.RequireRole(domain.RoleDepartmentHead)
	r.With(hod).Get("/hod/home", profile.Home(domain.RoleDepartmentHead))
	r.With(hod).Get("/hod/{id}", profile.Show(domain.RoleDepartmentHead))
	r.With(hod).Get("/hod/{id}/edit", profile.EditForm(domain.RoleDepartmentHead))
	r.With(hod).Put("/hod/{id}", profile.Update(domain.RoleDepartmentHead))
	r.With(hod).Get("/hod/{id}/leave", leave.Queue)
	r.With(hod).Get("/hod/{id}/leave/{studentID}/info", leave.Info)
	r.With(hod).Post("/hod/{id}/leave/{studentID}/review", leave.Review)

	warden := gate.RequireRole(domain.RoleWarden)
	r.With(warden).Get("/warden/home", profile.Home(domain.RoleWarden))
	r.With(warden).Get("/warden/{id}", profile.Show(domain.RoleWarden))
	r.With(warden).Get("/warden/{id}/edit", profile.EditForm(domain.RoleWarden))
	r.With(warden).Put("/warden/{id}", profile.Update(domain.RoleWarden))
	r.With(warden).Get("/warden/{id}/leave", leave.Queue)
	r.With(warden).Get("/warden/{id}/leave/{studentID}/info", leave.Info)
	r.With(warden).Post("/warden/{id}/leave/{studentID}/review", leave.Review)

	r.NotFound(NotFound)

	return r
}
